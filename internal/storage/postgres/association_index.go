package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type associationIndex struct {
	db *sql.DB
}

// NewAssociationIndex создаёт PostgreSQL-реализацию AssociationIndex поверх
// таблицы order_products с первичным ключом (order_id, product_id).
func NewAssociationIndex(store *Store) domain.AssociationIndex {
	return &associationIndex{db: store.DB()}
}

// Add проверяет существование обеих сторон и вставляет пару в одной
// транзакции. Уникальность обеспечивает первичный ключ пары: гонка двух Add
// разрешается в одну вставку, проигравший наблюдает AlreadyPresent.
func (idx *associationIndex) Add(orderID, productID int64) (domain.AddResult, error) {
	var result domain.AddResult

	err := inTx(idx.db, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)
		`, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("check order exists: %w", err)
		}
		if !exists {
			return domain.ErrOrderNotFound
		}

		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)
		`, productID).Scan(&exists); err != nil {
			return fmt.Errorf("check product exists: %w", err)
		}
		if !exists {
			return domain.ErrProductNotFound
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1,$2)
			ON CONFLICT (order_id, product_id) DO NOTHING
		`, orderID, productID)
		if err != nil {
			// Сторона могла исчезнуть между проверкой и вставкой.
			if isForeignKeyViolation(err) {
				if constraintName(err) == "order_products_product_id_fkey" {
					return domain.ErrProductNotFound
				}
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("insert order_product: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			result = domain.AddResultAlreadyPresent
			return nil
		}
		result = domain.AddResultAdded
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}

func (idx *associationIndex) Remove(orderID, productID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := idx.db.ExecContext(ctx, `
		DELETE FROM order_products
		WHERE order_id = $1 AND product_id = $2
	`, orderID, productID)
	if err != nil {
		return fmt.Errorf("delete order_product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotInOrder
	}

	return nil
}

// ProductsOf разрешает пары заказа через LEFT JOIN: строка без товара —
// висячая ссылка, то есть повреждение данных, а не пустой результат.
func (idx *associationIndex) ProductsOf(orderID int64) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := idx.db.QueryContext(ctx, `
		SELECT op.product_id, p.id, p.name, p.price
		FROM order_products op
		LEFT JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.product_id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			refID   int64
			joinID  sql.NullInt64
			name    sql.NullString
			price   sql.NullFloat64
			product domain.Product
		)
		if err := rows.Scan(&refID, &joinID, &name, &price); err != nil {
			return nil, fmt.Errorf("scan order product row: %w", err)
		}
		if !joinID.Valid {
			return nil, &domain.IntegrityError{Kind: domain.KindProduct, ID: refID}
		}
		product.ID = joinID.Int64
		product.Name = name.String
		product.Price = price.Float64
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order product rows: %w", err)
	}

	return products, nil
}

// OnEntityDeleted удаляет все пары, ссылающиеся на удалённую сущность.
// Репозитории каскадируют внутри своих транзакций, поэтому здесь обычно
// нечего удалять; хук остаётся идемпотентной страховкой для вызывающего слоя.
func (idx *associationIndex) OnEntityDeleted(kind domain.Kind, id int64) error {
	var query string
	switch kind {
	case domain.KindOrder:
		query = `DELETE FROM order_products WHERE order_id = $1`
	case domain.KindProduct:
		query = `DELETE FROM order_products WHERE product_id = $1`
	default:
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := idx.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("cascade %s %d: %w", kind, id, err)
	}
	return nil
}

var _ domain.AssociationIndex = (*associationIndex)(nil)
