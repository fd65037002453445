package stock

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ReadHeld(ctx context.Context, warehouseID int, productIDs []int) (map[int]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT product_id, held FROM stock WHERE warehouse_id=$1 AND product_id = ANY($2)`,
		warehouseID, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHeld(rows)
}

func (r *Repo) HeldByWarehouse(ctx context.Context, warehouseID int) (map[int]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT product_id, held FROM stock WHERE warehouse_id=$1`, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHeld(rows)
}

func collectHeld(rows pgx.Rows) (map[int]int, error) {
	out := map[int]int{}
	for rows.Next() {
		var productID, held int
		if err := rows.Scan(&productID, &held); err != nil {
			return nil, err
		}
		out[productID] = held
	}
	return out, rows.Err()
}

// ApplyDelta runs the whole batch in one transaction. Decrements are
// conditional on the row holding enough stock, so the non-negativity
// invariant holds even when concurrent requests interleave between a
// caller's read and this write.
func (r *Repo) ApplyDelta(ctx context.Context, warehouseID int, deltas []Alteration) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range deltas {
		switch {
		case d.Delta == 0:
			continue
		case d.Delta > 0:
			_, err := tx.Exec(ctx, `
				INSERT INTO stock (warehouse_id, product_id, held)
				VALUES ($1, $2, $3)
				ON CONFLICT (warehouse_id, product_id) DO UPDATE SET held = stock.held + EXCLUDED.held`,
				warehouseID, d.ProductID, d.Delta)
			if err != nil {
				return err
			}
		default:
			qty := -d.Delta
			ct, err := tx.Exec(ctx, `
				UPDATE stock SET held = held - $3
				WHERE warehouse_id=$1 AND product_id=$2 AND held >= $3`,
				warehouseID, d.ProductID, qty)
			if err != nil {
				return err
			}
			if ct.RowsAffected() != 1 {
				// rollback via defer
				return fmt.Errorf("product %d in warehouse %d: %w",
					d.ProductID, warehouseID, ErrAtomicityViolation)
			}
		}
	}
	return tx.Commit(ctx)
}
