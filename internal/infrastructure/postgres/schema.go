package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate crea las tablas si no existen. El CHECK de quantity respalda en la
// BD el invariante "el stock nunca es negativo"; las FK en cascada replican el
// borrado histórico de ítems al eliminar un producto o una venta.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		price      NUMERIC(12,2) NOT NULL CHECK (price > 0),
		cost       NUMERIC(12,2) NOT NULL CHECK (cost > 0),
		quantity   BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS sales (
		id       BIGSERIAL PRIMARY KEY,
		customer TEXT NOT NULL,
		date     TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS sale_items (
		id         BIGSERIAL PRIMARY KEY,
		sale_id    BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity   BIGINT NOT NULL CHECK (quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id    ON sale_items(sale_id);
	CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items(product_id);`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear tablas: %w", err)
	}
	return nil
}
