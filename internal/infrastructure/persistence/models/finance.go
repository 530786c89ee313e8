package models

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/finance/calc"
	"github.com/shopspring/decimal"
)

// JournalEntryModel is the persistence model for a journal entry line
type JournalEntryModel struct {
	BaseModel
	EntryNumber string                `gorm:"type:varchar(50);not null;index"`
	EntryDate   time.Time             `gorm:"type:date;not null;index"`
	AccountCode string                `gorm:"type:varchar(20);not null;index"`
	AccountName string                `gorm:"type:varchar(200)"`
	Description string                `gorm:"type:text"`
	Debit       decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Credit      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	Status      finance.JournalStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry
func (m *JournalEntryModel) ToDomain() *finance.JournalEntry {
	return &finance.JournalEntry{
		BaseEntity:  m.BaseModel.ToDomain(),
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Reference:   m.Reference,
		Status:      m.Status,
	}
}

// JournalEntryModelFromDomain creates a persistence model from a domain JournalEntry
func JournalEntryModelFromDomain(e *finance.JournalEntry) *JournalEntryModel {
	m := &JournalEntryModel{
		EntryNumber: e.EntryNumber,
		EntryDate:   dateOnly(e.EntryDate),
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Reference:   e.Reference,
		Status:      e.Status,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// InvoiceColumns are the columns shared by payables and receivables
type InvoiceColumns struct {
	InvoiceNumber string             `gorm:"type:varchar(50);not null;index"`
	InvoiceDate   *time.Time         `gorm:"type:date"`
	DueDate       time.Time          `gorm:"type:date;not null;index"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Payments      []finance.Payment  `gorm:"type:jsonb;serializer:json"`
	AmountPaid    decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	BalanceDue    decimal.Decimal    `gorm:"type:decimal(18,4);not null;index"`
	Status        calc.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Notes         string             `gorm:"type:text"`
}

func (c *InvoiceColumns) toDomain() finance.Invoice {
	payments := c.Payments
	if payments == nil {
		payments = []finance.Payment{}
	}
	return finance.Invoice{
		InvoiceNumber: c.InvoiceNumber,
		InvoiceDate:   c.InvoiceDate,
		DueDate:       c.DueDate,
		TotalAmount:   c.TotalAmount,
		Payments:      payments,
		AmountPaid:    c.AmountPaid,
		BalanceDue:    c.BalanceDue,
		Status:        c.Status,
		Notes:         c.Notes,
	}
}

func invoiceColumnsFromDomain(i finance.Invoice) InvoiceColumns {
	payments := i.Payments
	if payments == nil {
		payments = []finance.Payment{}
	}
	return InvoiceColumns{
		InvoiceNumber: i.InvoiceNumber,
		InvoiceDate:   dateOnlyPtr(i.InvoiceDate),
		DueDate:       dateOnly(i.DueDate),
		TotalAmount:   i.TotalAmount,
		Payments:      payments,
		AmountPaid:    i.AmountPaid,
		BalanceDue:    i.BalanceDue,
		Status:        i.Status,
		Notes:         i.Notes,
	}
}

// AccountPayableModel is the persistence model for a payable
type AccountPayableModel struct {
	BaseModel
	InvoiceColumns `gorm:"embedded"`
	VendorName     string `gorm:"type:varchar(200);not null;index"`
	Category       string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AccountPayableModel) TableName() string {
	return "accounts_payable"
}

// ToDomain converts the persistence model to a domain AccountPayable
func (m *AccountPayableModel) ToDomain() *finance.AccountPayable {
	return &finance.AccountPayable{
		BaseEntity: m.BaseModel.ToDomain(),
		Invoice:    m.InvoiceColumns.toDomain(),
		VendorName: m.VendorName,
		Category:   m.Category,
	}
}

// AccountPayableModelFromDomain creates a persistence model from a domain AccountPayable
func AccountPayableModelFromDomain(ap *finance.AccountPayable) *AccountPayableModel {
	m := &AccountPayableModel{
		InvoiceColumns: invoiceColumnsFromDomain(ap.Invoice),
		VendorName:     ap.VendorName,
		Category:       ap.Category,
	}
	m.FromDomainBaseEntity(ap.BaseEntity)
	return m
}

// AccountReceivableModel is the persistence model for a receivable
type AccountReceivableModel struct {
	BaseModel
	InvoiceColumns `gorm:"embedded"`
	CustomerName   string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (AccountReceivableModel) TableName() string {
	return "accounts_receivable"
}

// ToDomain converts the persistence model to a domain AccountReceivable
func (m *AccountReceivableModel) ToDomain() *finance.AccountReceivable {
	return &finance.AccountReceivable{
		BaseEntity:   m.BaseModel.ToDomain(),
		Invoice:      m.InvoiceColumns.toDomain(),
		CustomerName: m.CustomerName,
	}
}

// AccountReceivableModelFromDomain creates a persistence model from a domain AccountReceivable
func AccountReceivableModelFromDomain(ar *finance.AccountReceivable) *AccountReceivableModel {
	m := &AccountReceivableModel{
		InvoiceColumns: invoiceColumnsFromDomain(ar.Invoice),
		CustomerName:   ar.CustomerName,
	}
	m.FromDomainBaseEntity(ar.BaseEntity)
	return m
}

// BudgetModel is the persistence model for a budget
type BudgetModel struct {
	BaseModel
	Name               string          `gorm:"type:varchar(200);not null"`
	Department         string          `gorm:"type:varchar(100);index"`
	Category           string          `gorm:"type:varchar(100);index"`
	FiscalYear         int             `gorm:"not null;index"`
	Period             string          `gorm:"type:varchar(20)"`
	OriginalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RevisedAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ActualAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CommittedAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalUtilised      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UtilisationPercent decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`
	RemainingAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget
func (m *BudgetModel) ToDomain() *finance.Budget {
	return &finance.Budget{
		BaseEntity:         m.BaseModel.ToDomain(),
		Name:               m.Name,
		Department:         m.Department,
		Category:           m.Category,
		FiscalYear:         m.FiscalYear,
		Period:             m.Period,
		OriginalAmount:     m.OriginalAmount,
		RevisedAmount:      m.RevisedAmount,
		ActualAmount:       m.ActualAmount,
		CommittedAmount:    m.CommittedAmount,
		Notes:              m.Notes,
		TotalUtilised:      m.TotalUtilised,
		UtilisationPercent: m.UtilisationPercent,
		RemainingAmount:    m.RemainingAmount,
	}
}

// BudgetModelFromDomain creates a persistence model from a domain Budget
func BudgetModelFromDomain(b *finance.Budget) *BudgetModel {
	m := &BudgetModel{
		Name:               b.Name,
		Department:         b.Department,
		Category:           b.Category,
		FiscalYear:         b.FiscalYear,
		Period:             b.Period,
		OriginalAmount:     b.OriginalAmount,
		RevisedAmount:      b.RevisedAmount,
		ActualAmount:       b.ActualAmount,
		CommittedAmount:    b.CommittedAmount,
		TotalUtilised:      b.TotalUtilised,
		UtilisationPercent: b.UtilisationPercent,
		RemainingAmount:    b.RemainingAmount,
		Notes:              b.Notes,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// CashFlowForecastModel is the persistence model for a cash flow forecast
type CashFlowForecastModel struct {
	BaseModel
	Period           string          `gorm:"type:varchar(20);not null;index"`
	ForecastDate     *time.Time      `gorm:"type:date"`
	BeginningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	CashSales                  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CollectionsFromReceivables decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LoanProceeds               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AssetSales                 decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InvestmentIncome           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherReceipts              decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	InventoryPurchases  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Payroll             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rent                decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Utilities           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LoanPayments        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxPayments         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CapitalExpenditures decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OperatingExpenses   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherPayments       decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	TotalReceipts      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPayments      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetCashChange      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EndingCashPosition decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`
	CashShortfall      bool            `gorm:"not null;index"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashFlowForecastModel) TableName() string {
	return "cash_flow_forecasts"
}

// ToDomain converts the persistence model to a domain CashFlowForecast
func (m *CashFlowForecastModel) ToDomain() *finance.CashFlowForecast {
	return &finance.CashFlowForecast{
		BaseEntity:       m.BaseModel.ToDomain(),
		Period:           m.Period,
		ForecastDate:     m.ForecastDate,
		BeginningBalance: m.BeginningBalance,
		Receipts: calc.Receipts{
			CashSales:                  m.CashSales,
			CollectionsFromReceivables: m.CollectionsFromReceivables,
			LoanProceeds:               m.LoanProceeds,
			AssetSales:                 m.AssetSales,
			InvestmentIncome:           m.InvestmentIncome,
			OtherReceipts:              m.OtherReceipts,
		},
		Payments: calc.Payments{
			InventoryPurchases:  m.InventoryPurchases,
			Payroll:             m.Payroll,
			Rent:                m.Rent,
			Utilities:           m.Utilities,
			LoanPayments:        m.LoanPayments,
			TaxPayments:         m.TaxPayments,
			CapitalExpenditures: m.CapitalExpenditures,
			OperatingExpenses:   m.OperatingExpenses,
			OtherPayments:       m.OtherPayments,
		},
		Notes:              m.Notes,
		TotalReceipts:      m.TotalReceipts,
		TotalPayments:      m.TotalPayments,
		NetCashChange:      m.NetCashChange,
		EndingCashPosition: m.EndingCashPosition,
		CashShortfall:      m.CashShortfall,
	}
}

// CashFlowForecastModelFromDomain creates a persistence model from a domain CashFlowForecast
func CashFlowForecastModelFromDomain(f *finance.CashFlowForecast) *CashFlowForecastModel {
	m := &CashFlowForecastModel{
		Period:                     f.Period,
		ForecastDate:               dateOnlyPtr(f.ForecastDate),
		BeginningBalance:           f.BeginningBalance,
		CashSales:                  f.CashSales,
		CollectionsFromReceivables: f.CollectionsFromReceivables,
		LoanProceeds:               f.LoanProceeds,
		AssetSales:                 f.AssetSales,
		InvestmentIncome:           f.InvestmentIncome,
		OtherReceipts:              f.OtherReceipts,
		InventoryPurchases:         f.InventoryPurchases,
		Payroll:                    f.Payroll,
		Rent:                       f.Rent,
		Utilities:                  f.Utilities,
		LoanPayments:               f.LoanPayments,
		TaxPayments:                f.TaxPayments,
		CapitalExpenditures:        f.Payments.CapitalExpenditures,
		OperatingExpenses:          f.OperatingExpenses,
		OtherPayments:              f.OtherPayments,
		TotalReceipts:              f.TotalReceipts,
		TotalPayments:              f.TotalPayments,
		NetCashChange:              f.NetCashChange,
		EndingCashPosition:         f.EndingCashPosition,
		CashShortfall:              f.CashShortfall,
		Notes:                      f.Notes,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// PurchaseOrderModel is the persistence model for a purchase order.
// Items are stored inline as JSON.
type PurchaseOrderModel struct {
	BaseModel
	PONumber       string                      `gorm:"column:po_number;type:varchar(50);not null;index"`
	VendorName     string                      `gorm:"type:varchar(200);not null;index"`
	OrderDate      time.Time                   `gorm:"type:date;not null;index"`
	ExpectedDate   *time.Time                  `gorm:"type:date"`
	Items          []finance.PurchaseOrderItem `gorm:"type:jsonb;serializer:json"`
	Subtotal       decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	TaxAmount      decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	ShippingAmount decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	TotalAmount    decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Status         finance.PurchaseOrderStatus `gorm:"type:varchar(20);not null;index"`
	Notes          string                      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *finance.PurchaseOrder {
	items := m.Items
	if items == nil {
		items = []finance.PurchaseOrderItem{}
	}
	return &finance.PurchaseOrder{
		BaseEntity:     m.BaseModel.ToDomain(),
		PONumber:       m.PONumber,
		VendorName:     m.VendorName,
		OrderDate:      m.OrderDate,
		ExpectedDate:   m.ExpectedDate,
		Items:          items,
		TaxAmount:      m.TaxAmount,
		ShippingAmount: m.ShippingAmount,
		Status:         m.Status,
		Notes:          m.Notes,
		Subtotal:       m.Subtotal,
		TotalAmount:    m.TotalAmount,
	}
}

// PurchaseOrderModelFromDomain creates a persistence model from a domain PurchaseOrder
func PurchaseOrderModelFromDomain(po *finance.PurchaseOrder) *PurchaseOrderModel {
	items := po.Items
	if items == nil {
		items = []finance.PurchaseOrderItem{}
	}
	m := &PurchaseOrderModel{
		PONumber:       po.PONumber,
		VendorName:     po.VendorName,
		OrderDate:      dateOnly(po.OrderDate),
		ExpectedDate:   dateOnlyPtr(po.ExpectedDate),
		Items:          items,
		Subtotal:       po.Subtotal,
		TaxAmount:      po.TaxAmount,
		ShippingAmount: po.ShippingAmount,
		TotalAmount:    po.TotalAmount,
		Status:         po.Status,
		Notes:          po.Notes,
	}
	m.FromDomainBaseEntity(po.BaseEntity)
	return m
}

// ExpenseReportModel is the persistence model for an expense report
type ExpenseReportModel struct {
	BaseModel
	EmployeeName string                      `gorm:"type:varchar(200);not null;index"`
	Department   string                      `gorm:"type:varchar(100)"`
	ReportDate   time.Time                   `gorm:"type:date;not null;index"`
	Category     string                      `gorm:"type:varchar(100);not null;index"`
	Description  string                      `gorm:"type:text"`
	Amount       decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Status       finance.ExpenseReportStatus `gorm:"type:varchar(20);not null;index"`
	ReceiptKey   string                      `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseReportModel) TableName() string {
	return "expense_reports"
}

// ToDomain converts the persistence model to a domain ExpenseReport
func (m *ExpenseReportModel) ToDomain() *finance.ExpenseReport {
	return &finance.ExpenseReport{
		BaseEntity:   m.BaseModel.ToDomain(),
		EmployeeName: m.EmployeeName,
		Department:   m.Department,
		ReportDate:   m.ReportDate,
		Category:     m.Category,
		Description:  m.Description,
		Amount:       m.Amount,
		Status:       m.Status,
		ReceiptKey:   m.ReceiptKey,
	}
}

// ExpenseReportModelFromDomain creates a persistence model from a domain ExpenseReport
func ExpenseReportModelFromDomain(r *finance.ExpenseReport) *ExpenseReportModel {
	m := &ExpenseReportModel{
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		ReportDate:   dateOnly(r.ReportDate),
		Category:     r.Category,
		Description:  r.Description,
		Amount:       r.Amount,
		Status:       r.Status,
		ReceiptKey:   r.ReceiptKey,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
