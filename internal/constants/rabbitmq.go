package constants

const (
	ExchangeName = "parser_exchange"

	QueueScrapeTasks      = "eaukcija_scrape_tasks"
	RoutingKeyScrapeTasks = "eaukcija.scrape.tasks"
	RoutingKeyTaskResults = "eaukcija.task.results"
)
