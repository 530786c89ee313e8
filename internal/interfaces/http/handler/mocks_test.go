package handler

import (
	"context"
	"io"

	"github.com/finops/backend/internal/application/dashboard"
	"github.com/finops/backend/internal/application/finance"
	"github.com/finops/backend/internal/application/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type budgetHandler = ResourceHandler[
	finance.CreateBudgetRequest,
	finance.UpdateBudgetRequest,
	finance.BudgetListFilter,
	finance.BudgetResponse,
]

// MockBudgetService is a mock of the budget ResourceService
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) Create(ctx context.Context, req finance.CreateBudgetRequest) (*finance.BudgetResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetResponse), args.Error(1)
}

func (m *MockBudgetService) GetByID(ctx context.Context, id uuid.UUID) (*finance.BudgetResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetResponse), args.Error(1)
}

func (m *MockBudgetService) List(ctx context.Context, filter finance.BudgetListFilter) ([]finance.BudgetResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]finance.BudgetResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockBudgetService) Update(ctx context.Context, id uuid.UUID, req finance.UpdateBudgetRequest) (*finance.BudgetResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetResponse), args.Error(1)
}

func (m *MockBudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardService is a mock of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (*dashboard.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Summary), args.Error(1)
}

func (m *MockDashboardService) Risks(ctx context.Context) (*dashboard.RisksResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.RisksResponse), args.Error(1)
}

func (m *MockDashboardService) Insights(ctx context.Context) (*dashboard.InsightsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.InsightsResponse), args.Error(1)
}

func (m *MockDashboardService) Aging(ctx context.Context) (*dashboard.AgingReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.AgingReport), args.Error(1)
}

// MockAuthService is a mock of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, input identity.RefreshTokenInput) (*identity.TokenResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.TokenResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identity.LogoutInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*identity.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserInfo), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockReceiptService is a mock of ReceiptService. The uploaded body is read
// into Body so tests can inspect it.
type MockReceiptService struct {
	mock.Mock
	Body []byte
}

func (m *MockReceiptService) UploadReceipt(ctx context.Context, id uuid.UUID, upload finance.ReceiptUpload, body io.Reader) (*finance.ExpenseReportResponse, error) {
	m.Body, _ = io.ReadAll(body)
	args := m.Called(ctx, id, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseReportResponse), args.Error(1)
}

func (m *MockReceiptService) ReceiptURL(ctx context.Context, id uuid.UUID) (*finance.ReceiptURLResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ReceiptURLResponse), args.Error(1)
}

// MockPDFRenderer is a mock of PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPinger is a mock of Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
