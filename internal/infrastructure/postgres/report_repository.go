package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes exportables.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesReportRows devuelve una fila por línea de venta con el nombre y precio
// vigentes del producto, ordenadas por total de línea descendente.
func (r *ReportRepo) SalesReportRows(ctx context.Context) ([]repository.SalesReportRow, error) {
	const query = `
	SELECT
	    s.id,
	    s.customer,
	    s.date,
	    p.name,
	    i.quantity,
	    p.price,
	    i.quantity * p.price AS line_total
	FROM sales s
	JOIN sale_items i ON i.sale_id    = s.id
	JOIN products   p ON p.id         = i.product_id
	ORDER BY line_total DESC, s.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesReportRows: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesReportRow
	for rows.Next() {
		var row repository.SalesReportRow
		if err := rows.Scan(
			&row.SaleID,
			&row.Customer,
			&row.Date,
			&row.Product,
			&row.Quantity,
			&row.UnitPrice,
			&row.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("reports.SalesReportRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// StockReportRows devuelve por producto la cantidad inicial (stock actual más
// lo vendido históricamente) y la cantidad actual.
func (r *ReportRepo) StockReportRows(ctx context.Context) ([]repository.StockReportRow, error) {
	const query = `
	SELECT
	    p.name,
	    p.quantity + COALESCE(SUM(i.quantity), 0) AS initial_quantity,
	    p.quantity                                AS current_quantity
	FROM products p
	LEFT JOIN sale_items i ON i.product_id = p.id
	GROUP BY p.id, p.name, p.quantity
	ORDER BY p.name, p.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.StockReportRows: %w", err)
	}
	defer rows.Close()

	var results []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(&row.Product, &row.InitialQuantity, &row.CurrentQuantity); err != nil {
			return nil, fmt.Errorf("reports.StockReportRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
