// Package rabbitmq holds the broker-facing adapters: the scrape-task
// consumer and the task-result reporter.
package rabbitmq

import (
	"fmt"

	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/pkg/rabbitmq/rabbitmq_common"
)

// PkgLoggerBridge adapts the application logger to the minimal logging
// contract of the rabbitmq helpers.
type PkgLoggerBridge struct {
	logger port.LoggerPort
}

var _ rabbitmq_common.Logger = (*PkgLoggerBridge)(nil)

func NewPkgLoggerBridge(logger port.LoggerPort) *PkgLoggerBridge {
	return &PkgLoggerBridge{logger: logger}
}

func (b *PkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, kvToFields(keysAndValues))
}

func kvToFields(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
