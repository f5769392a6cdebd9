package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type pair struct {
	orderID   int64
	productID int64
}

// associationIndexInMemory — in-memory реализация AssociationIndex.
// Один мьютекс на весь набор пар: гонка двух Add по одной паре разрешается
// в одну вставку, вторая наблюдает AlreadyPresent.
type associationIndexInMemory struct {
	mu       sync.RWMutex
	pairs    map[pair]struct{}
	orders   domain.OrderRepository
	products domain.ProductRepository
}

// NewAssociationIndex возвращает in-memory индекс состава заказов.
// Репозитории нужны для проверки существования сторон на границе Add
// и для разрешения товаров в ProductsOf.
func NewAssociationIndex(orders domain.OrderRepository, products domain.ProductRepository) domain.AssociationIndex {
	return &associationIndexInMemory{
		pairs:    make(map[pair]struct{}),
		orders:   orders,
		products: products,
	}
}

func (idx *associationIndexInMemory) Add(orderID, productID int64) (domain.AddResult, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, err := idx.orders.Get(orderID); err != nil {
		return "", err
	}
	if _, err := idx.products.Get(productID); err != nil {
		return "", err
	}

	key := pair{orderID: orderID, productID: productID}
	if _, exists := idx.pairs[key]; exists {
		return domain.AddResultAlreadyPresent, nil
	}
	idx.pairs[key] = struct{}{}
	return domain.AddResultAdded, nil
}

func (idx *associationIndexInMemory) Remove(orderID, productID int64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := pair{orderID: orderID, productID: productID}
	if _, exists := idx.pairs[key]; !exists {
		return domain.ErrProductNotInOrder
	}
	delete(idx.pairs, key)
	return nil
}

// ProductsOf разрешает каждую пару заказа через репозиторий товаров.
// Висячая ссылка означает, что каскад при удалении не отработал —
// это повреждение данных, а не пустой результат.
func (idx *associationIndexInMemory) ProductsOf(orderID int64) ([]domain.Product, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	products := make([]domain.Product, 0)
	for key := range idx.pairs {
		if key.orderID != orderID {
			continue
		}
		product, err := idx.products.Get(key.productID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.IntegrityError{Kind: domain.KindProduct, ID: key.productID}
			}
			return nil, err
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (idx *associationIndexInMemory) OnEntityDeleted(kind domain.Kind, id int64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	switch kind {
	case domain.KindOrder:
		for key := range idx.pairs {
			if key.orderID == id {
				delete(idx.pairs, key)
			}
		}
	case domain.KindProduct:
		for key := range idx.pairs {
			if key.productID == id {
				delete(idx.pairs, key)
			}
		}
	}
	return nil
}

var _ domain.AssociationIndex = (*associationIndexInMemory)(nil)
