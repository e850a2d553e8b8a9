package mocks

import (
	context "context"
	entity "taskmanager/internal/domain/entity"
	usecase "taskmanager/internal/usecase"

	mock "github.com/stretchr/testify/mock"
)

// MockUserUsecase is an autogenerated mock type for the UserUsecase type
type MockUserUsecase struct {
	mock.Mock
}

type MockUserUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserUsecase) EXPECT() *MockUserUsecase_Expecter {
	return &MockUserUsecase_Expecter{mock: &_m.Mock}
}

// Register provides a mock function with given fields: ctx, input
func (_m *MockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	ret := _m.Called(ctx, input)

	if len(ret) == 0 {
		panic("no return value specified for Register")
	}

	var r0 *usecase.AuthOutput
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *usecase.RegisterInput) (*usecase.AuthOutput, error)); ok {
		return rf(ctx, input)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *usecase.RegisterInput) *usecase.AuthOutput); ok {
		r0 = rf(ctx, input)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*usecase.AuthOutput)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, *usecase.RegisterInput) error); ok {
		r1 = rf(ctx, input)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockUserUsecase_Register_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Register'
type MockUserUsecase_Register_Call struct {
	*mock.Call
}

// Register is a helper method to define mock.On call
//   - ctx context.Context
//   - input *usecase.RegisterInput
func (_e *MockUserUsecase_Expecter) Register(ctx interface{}, input interface{}) *MockUserUsecase_Register_Call {
	return &MockUserUsecase_Register_Call{Call: _e.mock.On("Register", ctx, input)}
}

func (_c *MockUserUsecase_Register_Call) Run(run func(ctx context.Context, input *usecase.RegisterInput)) *MockUserUsecase_Register_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*usecase.RegisterInput))
	})
	return _c
}

func (_c *MockUserUsecase_Register_Call) Return(_a0 *usecase.AuthOutput, _a1 error) *MockUserUsecase_Register_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockUserUsecase_Register_Call) RunAndReturn(run func(context.Context, *usecase.RegisterInput) (*usecase.AuthOutput, error)) *MockUserUsecase_Register_Call {
	_c.Call.Return(run)
	return _c
}

// Login provides a mock function with given fields: ctx, input
func (_m *MockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	ret := _m.Called(ctx, input)

	if len(ret) == 0 {
		panic("no return value specified for Login")
	}

	var r0 *usecase.AuthOutput
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error)); ok {
		return rf(ctx, input)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *usecase.LoginInput) *usecase.AuthOutput); ok {
		r0 = rf(ctx, input)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*usecase.AuthOutput)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, *usecase.LoginInput) error); ok {
		r1 = rf(ctx, input)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockUserUsecase_Login_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Login'
type MockUserUsecase_Login_Call struct {
	*mock.Call
}

// Login is a helper method to define mock.On call
//   - ctx context.Context
//   - input *usecase.LoginInput
func (_e *MockUserUsecase_Expecter) Login(ctx interface{}, input interface{}) *MockUserUsecase_Login_Call {
	return &MockUserUsecase_Login_Call{Call: _e.mock.On("Login", ctx, input)}
}

func (_c *MockUserUsecase_Login_Call) Run(run func(ctx context.Context, input *usecase.LoginInput)) *MockUserUsecase_Login_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*usecase.LoginInput))
	})
	return _c
}

func (_c *MockUserUsecase_Login_Call) Return(_a0 *usecase.AuthOutput, _a1 error) *MockUserUsecase_Login_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockUserUsecase_Login_Call) RunAndReturn(run func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error)) *MockUserUsecase_Login_Call {
	_c.Call.Return(run)
	return _c
}

// ListUsers provides a mock function with given fields: ctx, principal
func (_m *MockUserUsecase) ListUsers(ctx context.Context, principal entity.Principal) ([]*entity.User, error) {
	ret := _m.Called(ctx, principal)

	if len(ret) == 0 {
		panic("no return value specified for ListUsers")
	}

	var r0 []*entity.User
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal) ([]*entity.User, error)); ok {
		return rf(ctx, principal)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal) []*entity.User); ok {
		r0 = rf(ctx, principal)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.User)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal) error); ok {
		r1 = rf(ctx, principal)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockUserUsecase_ListUsers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListUsers'
type MockUserUsecase_ListUsers_Call struct {
	*mock.Call
}

// ListUsers is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
func (_e *MockUserUsecase_Expecter) ListUsers(ctx interface{}, principal interface{}) *MockUserUsecase_ListUsers_Call {
	return &MockUserUsecase_ListUsers_Call{Call: _e.mock.On("ListUsers", ctx, principal)}
}

func (_c *MockUserUsecase_ListUsers_Call) Run(run func(ctx context.Context, principal entity.Principal)) *MockUserUsecase_ListUsers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal))
	})
	return _c
}

func (_c *MockUserUsecase_ListUsers_Call) Return(_a0 []*entity.User, _a1 error) *MockUserUsecase_ListUsers_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockUserUsecase_ListUsers_Call) RunAndReturn(run func(context.Context, entity.Principal) ([]*entity.User, error)) *MockUserUsecase_ListUsers_Call {
	_c.Call.Return(run)
	return _c
}

// GetUser provides a mock function with given fields: ctx, principal, userID
func (_m *MockUserUsecase) GetUser(ctx context.Context, principal entity.Principal, userID int64) (*entity.User, error) {
	ret := _m.Called(ctx, principal, userID)

	if len(ret) == 0 {
		panic("no return value specified for GetUser")
	}

	var r0 *entity.User
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) (*entity.User, error)); ok {
		return rf(ctx, principal, userID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) *entity.User); ok {
		r0 = rf(ctx, principal, userID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.User)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Principal, int64) error); ok {
		r1 = rf(ctx, principal, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockUserUsecase_GetUser_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetUser'
type MockUserUsecase_GetUser_Call struct {
	*mock.Call
}

// GetUser is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - userID int64
func (_e *MockUserUsecase_Expecter) GetUser(ctx interface{}, principal interface{}, userID interface{}) *MockUserUsecase_GetUser_Call {
	return &MockUserUsecase_GetUser_Call{Call: _e.mock.On("GetUser", ctx, principal, userID)}
}

func (_c *MockUserUsecase_GetUser_Call) Run(run func(ctx context.Context, principal entity.Principal, userID int64)) *MockUserUsecase_GetUser_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(int64))
	})
	return _c
}

func (_c *MockUserUsecase_GetUser_Call) Return(_a0 *entity.User, _a1 error) *MockUserUsecase_GetUser_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockUserUsecase_GetUser_Call) RunAndReturn(run func(context.Context, entity.Principal, int64) (*entity.User, error)) *MockUserUsecase_GetUser_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteUser provides a mock function with given fields: ctx, principal, userID
func (_m *MockUserUsecase) DeleteUser(ctx context.Context, principal entity.Principal, userID int64) error {
	ret := _m.Called(ctx, principal, userID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteUser")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Principal, int64) error); ok {
		r0 = rf(ctx, principal, userID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockUserUsecase_DeleteUser_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteUser'
type MockUserUsecase_DeleteUser_Call struct {
	*mock.Call
}

// DeleteUser is a helper method to define mock.On call
//   - ctx context.Context
//   - principal entity.Principal
//   - userID int64
func (_e *MockUserUsecase_Expecter) DeleteUser(ctx interface{}, principal interface{}, userID interface{}) *MockUserUsecase_DeleteUser_Call {
	return &MockUserUsecase_DeleteUser_Call{Call: _e.mock.On("DeleteUser", ctx, principal, userID)}
}

func (_c *MockUserUsecase_DeleteUser_Call) Run(run func(ctx context.Context, principal entity.Principal, userID int64)) *MockUserUsecase_DeleteUser_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.Principal), args[2].(int64))
	})
	return _c
}

func (_c *MockUserUsecase_DeleteUser_Call) Return(_a0 error) *MockUserUsecase_DeleteUser_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockUserUsecase_DeleteUser_Call) RunAndReturn(run func(context.Context, entity.Principal, int64) error) *MockUserUsecase_DeleteUser_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockUserUsecase creates a new instance of MockUserUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUserUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserUsecase {
	mock := &MockUserUsecase{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
