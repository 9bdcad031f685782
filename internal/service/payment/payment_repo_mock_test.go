package payment

import (
	"context"
	"sync"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

var _ paymentRepo = &paymentRepoMock{}

type paymentRepoMock struct {
	CreateFunc           func(ctx context.Context, p domain.Payment) (*domain.Payment, error)
	UpdateFunc           func(ctx context.Context, p domain.Payment) (*domain.Payment, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Payment, error)
	GetByIDForUpdateFunc func(ctx context.Context, id int64) (*domain.Payment, error)
	ListFunc             func(ctx context.Context) ([]domain.Payment, error)
	SearchFunc           func(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error)
	DeleteFunc           func(ctx context.Context, id int64) (bool, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   domain.Payment
		}
		Update []struct {
			Ctx context.Context
			P   domain.Payment
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx context.Context
		}
		Search []struct {
			Ctx context.Context
			F   domain.PaymentFilter
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockCreate           sync.RWMutex
	lockUpdate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockList             sync.RWMutex
	lockSearch           sync.RWMutex
	lockDelete           sync.RWMutex
}

func (mock *paymentRepoMock) Create(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	if mock.CreateFunc == nil {
		panic("paymentRepoMock.CreateFunc: method is nil but paymentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Payment
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *paymentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   domain.Payment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *paymentRepoMock) Update(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	if mock.UpdateFunc == nil {
		panic("paymentRepoMock.UpdateFunc: method is nil but paymentRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Payment
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *paymentRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	P   domain.Payment
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *paymentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	if mock.GetByIDFunc == nil {
		panic("paymentRepoMock.GetByIDFunc: method is nil but paymentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *paymentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *paymentRepoMock) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("paymentRepoMock.GetByIDForUpdateFunc: method is nil but paymentRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *paymentRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *paymentRepoMock) List(ctx context.Context) ([]domain.Payment, error) {
	if mock.ListFunc == nil {
		panic("paymentRepoMock.ListFunc: method is nil but paymentRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *paymentRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *paymentRepoMock) Search(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	if mock.SearchFunc == nil {
		panic("paymentRepoMock.SearchFunc: method is nil but paymentRepo.Search was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.PaymentFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, f)
}

func (mock *paymentRepoMock) SearchCalls() []struct {
	Ctx context.Context
	F   domain.PaymentFilter
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

func (mock *paymentRepoMock) Delete(ctx context.Context, id int64) (bool, error) {
	if mock.DeleteFunc == nil {
		panic("paymentRepoMock.DeleteFunc: method is nil but paymentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *paymentRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
