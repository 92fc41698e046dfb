package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-vending/internal/domain"
)

type ProductStore struct {
	conn DBTX
}

func NewProductStore(conn DBTX) *ProductStore {
	return &ProductStore{conn: conn}
}

const productColumns = `id, name, cost, amount_available, seller_id`

// Save сохраняет продукт. Запись с тем же id перезаписывается целиком.
func (s *ProductStore) Save(ctx context.Context, product domain.Product) (*domain.Product, error) {
	row := s.conn.QueryRow(ctx, `
		INSERT INTO products (id, name, cost, amount_available, seller_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name             = excluded.name,
		    cost             = excluded.cost,
		    amount_available = excluded.amount_available,
		    seller_id        = excluded.seller_id
		RETURNING `+productColumns,
		product.ID, product.Name, product.Cost, product.AmountAvailable, product.SellerID,
	)
	saved, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "saving product %s", product.ID)
	}
	return saved, nil
}

func (s *ProductStore) Update(ctx context.Context, product domain.Product) (bool, error) {
	tag, err := s.conn.Exec(ctx, `
		UPDATE products
		SET name = $2, cost = $3, amount_available = $4, seller_id = $5
		WHERE id = $1`,
		product.ID, product.Name, product.Cost, product.AmountAvailable, product.SellerID,
	)
	if err != nil {
		return false, convertErr(err, "updating product %s", product.ID)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *ProductStore) Delete(ctx context.Context, product domain.Product) (bool, error) {
	tag, err := s.conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, product.ID)
	if err != nil {
		return false, convertErr(err, "deleting product %s", product.ID)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product by id %s", id)
	}
	return product, nil
}

func (s *ProductStore) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product by name %s", name)
	}
	return product, nil
}

func (s *ProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.conn.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, convertErr(err, "finding all products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning product row")
		}
		products = append(products, *product)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating product rows")
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID, &product.Name, &product.Cost, &product.AmountAvailable, &product.SellerID,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &product, nil
}
