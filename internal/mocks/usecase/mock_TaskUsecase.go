package mocks

import (
	context "context"
	entity "taskmanager/internal/domain/entity"
	usecase "taskmanager/internal/usecase"

	mock "github.com/stretchr/testify/mock"
)

// MockTaskUsecase is an autogenerated mock type for the TaskUsecase type
type MockTaskUsecase struct {
	mock.Mock
}

type MockTaskUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTaskUsecase) EXPECT() *MockTaskUsecase_Expecter {
	return &MockTaskUsecase_Expecter{mock: &_m.Mock}
}

// ListTasks provides a mock function with given fields: ctx, principal
func (_m *MockTaskUsecase) ListTasks(ctx context.Context, principal entity.Principal) ([]*entity.Task, error) {
	ret := _m.Called(ctx, principal)

	if len(ret) == 0 {
		panic("no return value specified for ListTasks")
	}

	var r0 []*entity.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal) ([]*entity.Task, error)); ok {
		return rf(ctx, principal)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal) []*entity.Task); ok {
		r0 = rf(ctx, principal)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal) error); ok {
		r1 = rf(ctx, principal)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTaskUsecase_ListTasks_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListTasks'
type MockTaskUsecase_ListTasks_Call struct {
	*mock.Call
}

// ListTasks is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
func (_e *MockTaskUsecase_Expecter) ListTasks(ctx interface{}, principal interface{}) *MockTaskUsecase_ListTasks_Call {
	return &MockTaskUsecase_ListTasks_Call{Call: _e.mock.On("ListTasks", ctx, principal)}
}

func (_c *MockTaskUsecase_ListTasks_Call) Run(run func(ctx context.Context, principal entity.Principal)) *MockTaskUsecase_ListTasks_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal))
	})
	return _c
}

func (_c *MockTaskUsecase_ListTasks_Call) Return(_a0 []*entity.Task, _a1 error) *MockTaskUsecase_ListTasks_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockTaskUsecase_ListTasks_Call) RunAndReturn(run func(context.Context, entity.Principal) ([]*entity.Task, error)) *MockTaskUsecase_ListTasks_Call {
	_c.Call.Return(run)
	return _c
}

// GetTask provides a mock function with given fields: ctx, principal, taskID
func (_m *MockTaskUsecase) GetTask(ctx context.Context, principal entity.Principal, taskID int64) (*entity.Task, error) {
	ret := _m.Called(ctx, principal, taskID)

	if len(ret) == 0 {
		panic("no return value specified for GetTask")
	}

	var r0 *entity.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) (*entity.Task, error)); ok {
		return rf(ctx, principal, taskID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) *entity.Task); ok {
		r0 = rf(ctx, principal, taskID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal, int64) error); ok {
		r1 = rf(ctx, principal, taskID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTaskUsecase_GetTask_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetTask'
type MockTaskUsecase_GetTask_Call struct {
	*mock.Call
}

// GetTask is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - taskID int64
func (_e *MockTaskUsecase_Expecter) GetTask(ctx interface{}, principal interface{}, taskID interface{}) *MockTaskUsecase_GetTask_Call {
	return &MockTaskUsecase_GetTask_Call{Call: _e.mock.On("GetTask", ctx, principal, taskID)}
}

func (_c *MockTaskUsecase_GetTask_Call) Run(run func(ctx context.Context, principal entity.Principal, taskID int64)) *MockTaskUsecase_GetTask_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(int64))
	})
	return _c
}

func (_c *MockTaskUsecase_GetTask_Call) Return(_a0 *entity.Task, _a1 error) *MockTaskUsecase_GetTask_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockTaskUsecase_GetTask_Call) RunAndReturn(run func(context.Context, entity.Principal, int64) (*entity.Task, error)) *MockTaskUsecase_GetTask_Call {
	_c.Call.Return(run)
	return _c
}

// CreateTask provides a mock function with given fields: ctx, principal, input
func (_m *MockTaskUsecase) CreateTask(ctx context.Context, principal entity.Principal, input *usecase.CreateTaskInput) (*entity.Task, error) {
	ret := _m.Called(ctx, principal, input)

	if len(ret) == 0 {
		panic("no return value specified for CreateTask")
	}

	var r0 *entity.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, *usecase.CreateTaskInput) (*entity.Task, error)); ok {
		return rf(ctx, principal, input)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, *usecase.CreateTaskInput) *entity.Task); ok {
		r0 = rf(ctx, principal, input)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal, *usecase.CreateTaskInput) error); ok {
		r1 = rf(ctx, principal, input)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTaskUsecase_CreateTask_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateTask'
type MockTaskUsecase_CreateTask_Call struct {
	*mock.Call
}

// CreateTask is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - input *usecase.CreateTaskInput
func (_e *MockTaskUsecase_Expecter) CreateTask(ctx interface{}, principal interface{}, input interface{}) *MockTaskUsecase_CreateTask_Call {
	return &MockTaskUsecase_CreateTask_Call{Call: _e.mock.On("CreateTask", ctx, principal, input)}
}

func (_c *MockTaskUsecase_CreateTask_Call) Run(run func(ctx context.Context, principal entity.Principal, input *usecase.CreateTaskInput)) *MockTaskUsecase_CreateTask_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(*usecase.CreateTaskInput))
	})
	return _c
}

func (_c *MockTaskUsecase_CreateTask_Call) Return(_a0 *entity.Task, _a1 error) *MockTaskUsecase_CreateTask_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockTaskUsecase_CreateTask_Call) RunAndReturn(run func(context.Context, entity.Principal, *usecase.CreateTaskInput) (*entity.Task, error)) *MockTaskUsecase_CreateTask_Call {
	_c.Call.Return(run)
	return _c
}

// UpdateTask provides a mock function with given fields: ctx, principal, taskID, input
func (_m *MockTaskUsecase) UpdateTask(ctx context.Context, principal entity.Principal, taskID int64, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	ret := _m.Called(ctx, principal, taskID, input)

	if len(ret) == 0 {
		panic("no return value specified for UpdateTask")
	}

	var r0 *entity.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64, *usecase.UpdateTaskInput) (*entity.Task, error)); ok {
		return rf(ctx, principal, taskID, input)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64, *usecase.UpdateTaskInput) *entity.Task); ok {
		r0 = rf(ctx, principal, taskID, input)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal, int64, *usecase.UpdateTaskInput) error); ok {
		r1 = rf(ctx, principal, taskID, input)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTaskUsecase_UpdateTask_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateTask'
type MockTaskUsecase_UpdateTask_Call struct {
	*mock.Call
}

// UpdateTask is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - taskID int64
//   - input *usecase.UpdateTaskInput
func (_e *MockTaskUsecase_Expecter) UpdateTask(ctx interface{}, principal interface{}, taskID interface{}, input interface{}) *MockTaskUsecase_UpdateTask_Call {
	return &MockTaskUsecase_UpdateTask_Call{Call: _e.mock.On("UpdateTask", ctx, principal, taskID, input)}
}

func (_c *MockTaskUsecase_UpdateTask_Call) Run(run func(ctx context.Context, principal entity.Principal, taskID int64, input *usecase.UpdateTaskInput)) *MockTaskUsecase_UpdateTask_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(int64), args[3].(*usecase.UpdateTaskInput))
	})
	return _c
}

func (_c *MockTaskUsecase_UpdateTask_Call) Return(_a0 *entity.Task, _a1 error) *MockTaskUsecase_UpdateTask_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockTaskUsecase_UpdateTask_Call) RunAndReturn(run func(context.Context, entity.Principal, int64, *usecase.UpdateTaskInput) (*entity.Task, error)) *MockTaskUsecase_UpdateTask_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteTask provides a mock function with given fields: ctx, principal, taskID
func (_m *MockTaskUsecase) DeleteTask(ctx context.Context, principal entity.Principal, taskID int64) error {
	ret := _m.Called(ctx, principal, taskID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteTask")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) error); ok {
		r0 = rf(ctx, principal, taskID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockTaskUsecase_DeleteTask_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteTask'
type MockTaskUsecase_DeleteTask_Call struct {
	*mock.Call
}

// DeleteTask is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - taskID int64
func (_e *MockTaskUsecase_Expecter) DeleteTask(ctx interface{}, principal interface{}, taskID interface{}) *MockTaskUsecase_DeleteTask_Call {
	return &MockTaskUsecase_DeleteTask_Call{Call: _e.mock.On("DeleteTask", ctx, principal, taskID)}
}

func (_c *MockTaskUsecase_DeleteTask_Call) Run(run func(ctx context.Context, principal entity.Principal, taskID int64)) *MockTaskUsecase_DeleteTask_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(int64))
	})
	return _c
}

func (_c *MockTaskUsecase_DeleteTask_Call) Return(_a0 error) *MockTaskUsecase_DeleteTask_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockTaskUsecase_DeleteTask_Call) RunAndReturn(run func(context.Context, entity.Principal, int64) error) *MockTaskUsecase_DeleteTask_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockTaskUsecase creates a new instance of MockTaskUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockTaskUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTaskUsecase {
	mock := &MockTaskUsecase{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
