// Package postgres persists auctions and their side entities. Side
// entities (locations, categories, executors, tags) are resolved by
// natural key so repeated scrapes never duplicate them.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eaukcija-parser-service/internal/contextkeys"
	"eaukcija-parser-service/internal/core/domain"
	"eaukcija-parser-service/internal/core/port"
	"eaukcija-parser-service/internal/translit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuctionStorageAdapter implements AuctionStoragePort over a pgx pool.
// Every upsert runs in its own transaction, so one broken auction never
// poisons the rest of a run.
type AuctionStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewAuctionStorageAdapter(pool *pgxpool.Pool) (*AuctionStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("auction storage: pool cannot be nil")
	}
	return &AuctionStorageAdapter{pool: pool}, nil
}

// UpsertAuction creates or refreshes one auction keyed by its code,
// resolving side entities inside the same transaction. The slug is
// computed once at creation and kept stable across updates.
func (a *AuctionStorageAdapter) UpsertAuction(ctx context.Context, record domain.AuctionRecord) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AuctionStorageAdapter",
		"code":      record.Code,
	})

	if record.Location == nil {
		return false, fmt.Errorf("auction storage: auction %s carries no location", record.Code)
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("auction storage: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	locationID, err := a.getOrCreateLocation(ctx, tx, *record.Location)
	if err != nil {
		return false, err
	}

	var categoryID, executorID *uuid.UUID
	if record.Category != "" {
		id, err := a.getOrCreateTitled(ctx, tx, "categories", record.Category, "category")
		if err != nil {
			return false, err
		}
		categoryID = &id
	}
	if record.Executor != "" {
		id, err := a.getOrCreateTitled(ctx, tx, "executors", record.Executor, "executor")
		if err != nil {
			return false, err
		}
		executorID = &id
	}

	created, err := a.upsertAuctionRow(ctx, tx, record, locationID, categoryID, executorID)
	if err != nil {
		return false, err
	}

	if err := a.replaceTags(ctx, tx, record.Code, record.Tags); err != nil {
		return false, err
	}
	if err := a.reconcileDocuments(ctx, tx, record.Code, record.DocumentTitles); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("auction storage: failed to commit auction %s: %w", record.Code, err)
	}

	logger.Debug("Auction persisted", port.Fields{"created": created})
	return created, nil
}

func (a *AuctionStorageAdapter) upsertAuctionRow(ctx context.Context, tx pgx.Tx, record domain.AuctionRecord, locationID uuid.UUID, categoryID, executorID *uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM auctions WHERE code = $1)`,
		record.Code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("auction storage: failed to check auction %s: %w", record.Code, err)
	}

	titleLat := translit.Normalize(record.Title)

	if exists {
		_, err = tx.Exec(ctx, `
			UPDATE auctions SET
				status = $2, title_sr = $3, title_lat = $4, url = $5,
				publication_date = $6, start_time = $7, end_time = $8,
				starting_price = $9, estimated_value = $10, bidding_step = $11,
				description = $12, sale_number = $13,
				location_id = $14, category_id = $15, executor_id = $16,
				updated_at = now()
			WHERE code = $1`,
			record.Code, string(record.Status), record.Title, titleLat, record.URL,
			record.PublicationDate, record.StartTime, record.EndTime,
			record.StartingPrice, record.EstimatedValue, record.BiddingStep,
			record.Description, record.SaleNumber,
			locationID, categoryID, executorID,
		)
		if err != nil {
			return false, fmt.Errorf("auction storage: failed to update auction %s: %w", record.Code, err)
		}
		return false, nil
	}

	slug, err := a.uniqueSlug(ctx, tx, "auctions", translit.SlugBase(record.Title, "auction"))
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO auctions (
			code, status, title_sr, title_lat, slug, url,
			publication_date, start_time, end_time,
			starting_price, estimated_value, bidding_step,
			description, sale_number,
			location_id, category_id, executor_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		record.Code, string(record.Status), record.Title, titleLat, slug, record.URL,
		record.PublicationDate, record.StartTime, record.EndTime,
		record.StartingPrice, record.EstimatedValue, record.BiddingStep,
		record.Description, record.SaleNumber,
		locationID, categoryID, executorID,
	)
	if err != nil {
		return false, fmt.Errorf("auction storage: failed to insert auction %s: %w", record.Code, err)
	}
	return true, nil
}

// getOrCreateLocation resolves a location by its
// municipality/city/cadastral-municipality triple.
func (a *AuctionStorageAdapter) getOrCreateLocation(ctx context.Context, tx pgx.Tx, key domain.LocationKey) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM locations
		 WHERE municipality = $1 AND city = $2 AND cadastral_municipality = $3`,
		key.Municipality, key.City, key.CadastralMunicipality,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("auction storage: failed to look up location: %w", err)
	}

	titleSr := joinNonEmpty(key.Municipality, key.City, key.CadastralMunicipality)
	slug, err := a.uniqueSlug(ctx, tx, "locations", translit.SlugBase(titleSr, "location"))
	if err != nil {
		return uuid.Nil, err
	}

	id = uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO locations (id, municipality, city, cadastral_municipality, title_sr, title_lat, slug)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, key.Municipality, key.City, key.CadastralMunicipality,
		titleSr, translit.Normalize(titleSr), slug,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auction storage: failed to insert location: %w", err)
	}
	return id, nil
}

// getOrCreateTitled resolves a side entity keyed on its source-script
// title. Works for every table with the title_sr/title_lat/slug shape.
func (a *AuctionStorageAdapter) getOrCreateTitled(ctx context.Context, tx pgx.Tx, table, titleSr, kind string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE title_sr = $1`, table),
		titleSr,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("auction storage: failed to look up %s: %w", kind, err)
	}

	slug, err := a.uniqueSlug(ctx, tx, table, translit.SlugBase(titleSr, kind))
	if err != nil {
		return uuid.Nil, err
	}

	id = uuid.New()
	_, err = tx.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, title_sr, title_lat, slug) VALUES ($1, $2, $3, $4)`, table),
		id, titleSr, translit.Normalize(titleSr), slug,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auction storage: failed to insert %s: %w", kind, err)
	}
	return id, nil
}

// replaceTags rewrites the auction's tag set wholesale, resolving each
// tag by title.
func (a *AuctionStorageAdapter) replaceTags(ctx context.Context, tx pgx.Tx, code string, tags []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM auction_tags WHERE auction_code = $1`, code); err != nil {
		return fmt.Errorf("auction storage: failed to clear tags of %s: %w", code, err)
	}
	for _, tag := range tags {
		tagID, err := a.getOrCreateTitled(ctx, tx, "tags", tag, "tag")
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO auction_tags (auction_code, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			code, tagID,
		)
		if err != nil {
			return fmt.Errorf("auction storage: failed to attach tag to %s: %w", code, err)
		}
	}
	return nil
}

// reconcileDocuments diffs the stored document titles against the
// extracted set: vanished titles are removed, new ones inserted, titles
// present on both sides stay untouched.
func (a *AuctionStorageAdapter) reconcileDocuments(ctx context.Context, tx pgx.Tx, code string, extracted []string) error {
	rows, err := tx.Query(ctx,
		`SELECT title FROM auction_documents WHERE auction_code = $1`, code)
	if err != nil {
		return fmt.Errorf("auction storage: failed to list documents of %s: %w", code, err)
	}
	var existing []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			rows.Close()
			return fmt.Errorf("auction storage: failed to scan document title: %w", err)
		}
		existing = append(existing, title)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("auction storage: failed reading documents of %s: %w", code, err)
	}

	diff := domain.DiffDocumentTitles(existing, extracted)

	for _, title := range diff.ToRemove {
		_, err := tx.Exec(ctx,
			`DELETE FROM auction_documents WHERE auction_code = $1 AND title = $2`,
			code, title,
		)
		if err != nil {
			return fmt.Errorf("auction storage: failed to remove document of %s: %w", code, err)
		}
	}
	for _, title := range diff.ToAdd {
		_, err := tx.Exec(ctx,
			`INSERT INTO auction_documents (id, auction_code, title, file_path)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (auction_code, title) DO NOTHING`,
			uuid.New(), code, title, fmt.Sprintf("auction_documents/%s/%s", code, title),
		)
		if err != nil {
			return fmt.Errorf("auction storage: failed to add document of %s: %w", code, err)
		}
	}
	return nil
}

// uniqueSlug loads the slugs colliding with base from the given table and
// picks the next free suffix.
func (a *AuctionStorageAdapter) uniqueSlug(ctx context.Context, tx pgx.Tx, table, base string) (string, error) {
	rows, err := tx.Query(ctx,
		fmt.Sprintf(`SELECT slug FROM %s WHERE slug = $1 OR slug LIKE $2`, table),
		base, base+"-%",
	)
	if err != nil {
		return "", fmt.Errorf("auction storage: failed to load slugs from %s: %w", table, err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", fmt.Errorf("auction storage: failed to scan slug: %w", err)
		}
		existing = append(existing, s)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("auction storage: failed reading slugs from %s: %w", table, err)
	}

	return translit.UniqueSlug(base, existing), nil
}

// ExpireFinished flips every auction whose end time has passed to the
// expired state.
func (a *AuctionStorageAdapter) ExpireFinished(ctx context.Context, now time.Time) (int64, error) {
	tag, err := a.pool.Exec(ctx, `
		UPDATE auctions SET status = $1, updated_at = now()
		WHERE end_time IS NOT NULL AND end_time <= $2 AND status <> $1`,
		string(domain.StatusExpired), now,
	)
	if err != nil {
		return 0, fmt.Errorf("auction storage: failed to expire auctions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
