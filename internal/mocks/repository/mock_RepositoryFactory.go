package mocks

import (
	repository "taskmanager/internal/domain/repository"

	mock "github.com/stretchr/testify/mock"
)

// MockRepositoryFactory is an autogenerated mock type for the RepositoryFactory type
type MockRepositoryFactory struct {
	mock.Mock
}

type MockRepositoryFactory_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRepositoryFactory) EXPECT() *MockRepositoryFactory_Expecter {
	return &MockRepositoryFactory_Expecter{mock: &_m.Mock}
}

// NewUserRepository provides a mock function with no fields
func (_m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for NewUserRepository")
	}

	var r0 repository.UserRepository
	if rf, ok := ret.Get(0).(func() repository.UserRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.UserRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_NewUserRepository_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'NewUserRepository'
type MockRepositoryFactory_NewUserRepository_Call struct {
	*mock.Call
}

// NewUserRepository is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) NewUserRepository() *MockRepositoryFactory_NewUserRepository_Call {
	return &MockRepositoryFactory_NewUserRepository_Call{Call: _e.mock.On("NewUserRepository")}
}

func (_c *MockRepositoryFactory_NewUserRepository_Call) Run(run func()) *MockRepositoryFactory_NewUserRepository_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_NewUserRepository_Call) Return(_a0 repository.UserRepository) *MockRepositoryFactory_NewUserRepository_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_NewUserRepository_Call) RunAndReturn(run func() repository.UserRepository) *MockRepositoryFactory_NewUserRepository_Call {
	_c.Call.Return(run)
	return _c
}

// NewTaskRepository provides a mock function with no fields
func (_m *MockRepositoryFactory) NewTaskRepository() repository.TaskRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for NewTaskRepository")
	}

	var r0 repository.TaskRepository
	if rf, ok := ret.Get(0).(func() repository.TaskRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.TaskRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_NewTaskRepository_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'NewTaskRepository'
type MockRepositoryFactory_NewTaskRepository_Call struct {
	*mock.Call
}

// NewTaskRepository is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) NewTaskRepository() *MockRepositoryFactory_NewTaskRepository_Call {
	return &MockRepositoryFactory_NewTaskRepository_Call{Call: _e.mock.On("NewTaskRepository")}
}

func (_c *MockRepositoryFactory_NewTaskRepository_Call) Run(run func()) *MockRepositoryFactory_NewTaskRepository_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_NewTaskRepository_Call) Return(_a0 repository.TaskRepository) *MockRepositoryFactory_NewTaskRepository_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_NewTaskRepository_Call) RunAndReturn(run func() repository.TaskRepository) *MockRepositoryFactory_NewTaskRepository_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockRepositoryFactory creates a new instance of MockRepositoryFactory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	mock := &MockRepositoryFactory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
