package book

import (
	"context"
	"sync"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

var _ bookRepo = &bookRepoMock{}

type bookRepoMock struct {
	CreateFunc           func(ctx context.Context, b domain.Book) (*domain.Book, error)
	UpdateFunc           func(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Book, error)
	GetByIDForUpdateFunc func(ctx context.Context, id int64) (*domain.Book, error)
	ListVisibleFunc      func(ctx context.Context) ([]domain.Book, error)
	SearchFunc           func(ctx context.Context, f domain.BookFilter) ([]domain.Book, error)
	DeleteFunc           func(ctx context.Context, id int64) (bool, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			B   domain.Book
		}
		Update []struct {
			Ctx context.Context
			B   domain.Book
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  int64
		}
		ListVisible []struct {
			Ctx context.Context
		}
		Search []struct {
			Ctx context.Context
			F   domain.BookFilter
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
	lockListVisible      sync.RWMutex
	lockSearch           sync.RWMutex
	lockDelete           sync.RWMutex
}

func (mock *bookRepoMock) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	if mock.CreateFunc == nil {
		panic("bookRepoMock.CreateFunc: method is nil but bookRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.Book
	}{
		Ctx: ctx,
		B:   b,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, b)
}

func (mock *bookRepoMock) CreateCalls() []struct {
	Ctx context.Context
	B   domain.Book
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *bookRepoMock) Update(ctx context.Context, b domain.Book) (*domain.Book, error) {
	if mock.UpdateFunc == nil {
		panic("bookRepoMock.UpdateFunc: method is nil but bookRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.Book
	}{
		Ctx: ctx,
		B:   b,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, b)
}

func (mock *bookRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	B   domain.Book
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *bookRepoMock) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	if mock.GetByIDFunc == nil {
		panic("bookRepoMock.GetByIDFunc: method is nil but bookRepo.GetByID was just called")
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

func (mock *bookRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *bookRepoMock) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("bookRepoMock.GetByIDForUpdateFunc: method is nil but bookRepo.GetByIDForUpdate was just called")
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

func (mock *bookRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *bookRepoMock) ListVisible(ctx context.Context) ([]domain.Book, error) {
	if mock.ListVisibleFunc == nil {
		panic("bookRepoMock.ListVisibleFunc: method is nil but bookRepo.ListVisible was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListVisible.Lock()
	mock.calls.ListVisible = append(mock.calls.ListVisible, callInfo)
	mock.lockListVisible.Unlock()
	return mock.ListVisibleFunc(ctx)
}

func (mock *bookRepoMock) ListVisibleCalls() []struct {
	Ctx context.Context
} {
	mock.lockListVisible.RLock()
	calls := mock.calls.ListVisible
	mock.lockListVisible.RUnlock()
	return calls
}

func (mock *bookRepoMock) Search(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	if mock.SearchFunc == nil {
		panic("bookRepoMock.SearchFunc: method is nil but bookRepo.Search was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.BookFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, f)
}

func (mock *bookRepoMock) SearchCalls() []struct {
	Ctx context.Context
	F   domain.BookFilter
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

func (mock *bookRepoMock) Delete(ctx context.Context, id int64) (bool, error) {
	if mock.DeleteFunc == nil {
		panic("bookRepoMock.DeleteFunc: method is nil but bookRepo.Delete was just called")
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

func (mock *bookRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
