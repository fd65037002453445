package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, gtin, gcp, name, weight_kg, lower_threshold, min_order_qty, discontinued`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Gtin, &p.Gcp, &p.Name, &p.WeightKg, &p.LowerThreshold, &p.MinOrderQty, &p.Discontinued)
	return p, err
}

func (r *Repo) ResolveByGtin(ctx context.Context, gtin string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE gtin=$1`, gtin))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) ResolveManyByGtin(ctx context.Context, gtins []string) (map[string]Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE gtin = ANY($1)`, gtins)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Product, len(gtins))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.Gtin] = p
	}
	return out, rows.Err()
}

func (r *Repo) ResolveByIDs(ctx context.Context, ids []int) (map[int]Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *Repo) CompanyByGcp(ctx context.Context, gcp string) (Company, error) {
	var c Company
	err := r.DB.QueryRow(ctx, `SELECT gcp, name FROM companies WHERE gcp=$1`, gcp).
		Scan(&c.Gcp, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, ErrNotFound
	}
	return c, err
}
