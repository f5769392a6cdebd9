package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func newCustomer() domain.Customer {
	return domain.Customer{Name: "Ana", Address: "1 Main St", Email: "ana@x.com"}
}

func TestCustomerRepository_CreateGet(t *testing.T) {
	repo := memory.NewCustomerRepository()

	created, err := repo.Create(newCustomer())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected first id 1, got %d", created.ID)
	}

	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != created {
		t.Fatalf("expected %+v, got %+v", created, stored)
	}
}

func TestCustomerRepository_GetMissing(t *testing.T) {
	repo := memory.NewCustomerRepository()

	if _, err := repo.Get(42); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_Update(t *testing.T) {
	repo := memory.NewCustomerRepository()
	created, err := repo.Create(newCustomer())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Email = "ana@y.com"
	if err := repo.Update(created); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Email != "ana@y.com" {
		t.Fatalf("expected replaced email, got %s", stored.Email)
	}

	missing := newCustomer()
	missing.ID = 42
	if err := repo.Update(missing); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := memory.NewCustomerRepository()

	first, err := repo.Create(newCustomer())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	second, err := repo.Create(newCustomer())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("id %d reused after delete of %d", second.ID, first.ID)
	}
}

func TestCustomerRepository_List(t *testing.T) {
	repo := memory.NewCustomerRepository()
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(newCustomer()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	customers, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	for i := 1; i < len(customers); i++ {
		if customers[i-1].ID >= customers[i].ID {
			t.Fatalf("list is not sorted by id: %+v", customers)
		}
	}
}
