package models

import (
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// BalanceSheetModel is the persistence model for a balance sheet
type BalanceSheetModel struct {
	BaseModel
	AsOfDate time.Time `gorm:"type:date;not null;index"`

	Cash                    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountsReceivable      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Inventory               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PrepaidExpenses         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherCurrentAssets      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FixedAssets             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherAssets             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountsPayable         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ShortTermDebt           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccruedLiabilities      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherCurrentLiabilities decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LongTermDebt            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherLiabilities        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OwnerEquity             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RetainedEarnings        decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	TotalCurrentAssets      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAssets             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCurrentLiabilities decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalLiabilities        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalEquity             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsBalanced              bool            `gorm:"not null"`
	Notes                   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BalanceSheetModel) TableName() string {
	return "balance_sheets"
}

// ToDomain converts the persistence model to a domain BalanceSheet
func (m *BalanceSheetModel) ToDomain() *finance.BalanceSheet {
	return &finance.BalanceSheet{
		BaseEntity: m.BaseModel.ToDomain(),
		AsOfDate:   m.AsOfDate,
		BalanceSheetLines: finance.BalanceSheetLines{
			Cash:                    m.Cash,
			AccountsReceivable:      m.AccountsReceivable,
			Inventory:               m.Inventory,
			PrepaidExpenses:         m.PrepaidExpenses,
			OtherCurrentAssets:      m.OtherCurrentAssets,
			FixedAssets:             m.FixedAssets,
			OtherAssets:             m.OtherAssets,
			AccountsPayable:         m.AccountsPayable,
			ShortTermDebt:           m.ShortTermDebt,
			AccruedLiabilities:      m.AccruedLiabilities,
			OtherCurrentLiabilities: m.OtherCurrentLiabilities,
			LongTermDebt:            m.LongTermDebt,
			OtherLiabilities:        m.OtherLiabilities,
			OwnerEquity:             m.OwnerEquity,
			RetainedEarnings:        m.RetainedEarnings,
		},
		Notes:                   m.Notes,
		TotalCurrentAssets:      m.TotalCurrentAssets,
		TotalAssets:             m.TotalAssets,
		TotalCurrentLiabilities: m.TotalCurrentLiabilities,
		TotalLiabilities:        m.TotalLiabilities,
		TotalEquity:             m.TotalEquity,
		IsBalanced:              m.IsBalanced,
	}
}

// BalanceSheetModelFromDomain creates a persistence model from a domain BalanceSheet
func BalanceSheetModelFromDomain(bs *finance.BalanceSheet) *BalanceSheetModel {
	l := bs.BalanceSheetLines
	m := &BalanceSheetModel{
		AsOfDate:                dateOnly(bs.AsOfDate),
		Cash:                    l.Cash,
		AccountsReceivable:      l.AccountsReceivable,
		Inventory:               l.Inventory,
		PrepaidExpenses:         l.PrepaidExpenses,
		OtherCurrentAssets:      l.OtherCurrentAssets,
		FixedAssets:             l.FixedAssets,
		OtherAssets:             l.OtherAssets,
		AccountsPayable:         l.AccountsPayable,
		ShortTermDebt:           l.ShortTermDebt,
		AccruedLiabilities:      l.AccruedLiabilities,
		OtherCurrentLiabilities: l.OtherCurrentLiabilities,
		LongTermDebt:            l.LongTermDebt,
		OtherLiabilities:        l.OtherLiabilities,
		OwnerEquity:             l.OwnerEquity,
		RetainedEarnings:        l.RetainedEarnings,
		TotalCurrentAssets:      bs.TotalCurrentAssets,
		TotalAssets:             bs.TotalAssets,
		TotalCurrentLiabilities: bs.TotalCurrentLiabilities,
		TotalLiabilities:        bs.TotalLiabilities,
		TotalEquity:             bs.TotalEquity,
		IsBalanced:              bs.IsBalanced,
		Notes:                   bs.Notes,
	}
	m.FromDomainBaseEntity(bs.BaseEntity)
	return m
}

// CashFlowStatementModel is the persistence model for a cash flow statement
type CashFlowStatementModel struct {
	BaseModel
	PeriodStart   time.Time       `gorm:"type:date;not null;index"`
	PeriodEnd     time.Time       `gorm:"type:date;not null;index"`
	BeginningCash decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	NetIncome             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Depreciation          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WorkingCapitalChanges decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherOperating        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CapitalExpenditures   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InvestmentProceeds    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherInvesting        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DebtIssued            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DebtRepaid            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DividendsPaid         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherFinancing        decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	OperatingCashFlow decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InvestingCashFlow decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FinancingCashFlow decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetChangeInCash   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EndingCash        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashFlowStatementModel) TableName() string {
	return "cash_flow_statements"
}

// ToDomain converts the persistence model to a domain CashFlowStatement
func (m *CashFlowStatementModel) ToDomain() *finance.CashFlowStatement {
	return &finance.CashFlowStatement{
		BaseEntity:    m.BaseModel.ToDomain(),
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		BeginningCash: m.BeginningCash,
		CashFlowActivities: finance.CashFlowActivities{
			NetIncome:             m.NetIncome,
			Depreciation:          m.Depreciation,
			WorkingCapitalChanges: m.WorkingCapitalChanges,
			OtherOperating:        m.OtherOperating,
			CapitalExpenditures:   m.CapitalExpenditures,
			InvestmentProceeds:    m.InvestmentProceeds,
			OtherInvesting:        m.OtherInvesting,
			DebtIssued:            m.DebtIssued,
			DebtRepaid:            m.DebtRepaid,
			DividendsPaid:         m.DividendsPaid,
			OtherFinancing:        m.OtherFinancing,
		},
		Notes:             m.Notes,
		OperatingCashFlow: m.OperatingCashFlow,
		InvestingCashFlow: m.InvestingCashFlow,
		FinancingCashFlow: m.FinancingCashFlow,
		NetChangeInCash:   m.NetChangeInCash,
		EndingCash:        m.EndingCash,
	}
}

// CashFlowStatementModelFromDomain creates a persistence model from a domain CashFlowStatement
func CashFlowStatementModelFromDomain(s *finance.CashFlowStatement) *CashFlowStatementModel {
	a := s.CashFlowActivities
	m := &CashFlowStatementModel{
		PeriodStart:           dateOnly(s.PeriodStart),
		PeriodEnd:             dateOnly(s.PeriodEnd),
		BeginningCash:         s.BeginningCash,
		NetIncome:             a.NetIncome,
		Depreciation:          a.Depreciation,
		WorkingCapitalChanges: a.WorkingCapitalChanges,
		OtherOperating:        a.OtherOperating,
		CapitalExpenditures:   a.CapitalExpenditures,
		InvestmentProceeds:    a.InvestmentProceeds,
		OtherInvesting:        a.OtherInvesting,
		DebtIssued:            a.DebtIssued,
		DebtRepaid:            a.DebtRepaid,
		DividendsPaid:         a.DividendsPaid,
		OtherFinancing:        a.OtherFinancing,
		OperatingCashFlow:     s.OperatingCashFlow,
		InvestingCashFlow:     s.InvestingCashFlow,
		FinancingCashFlow:     s.FinancingCashFlow,
		NetChangeInCash:       s.NetChangeInCash,
		EndingCash:            s.EndingCash,
		Notes:                 s.Notes,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// IncomeStatementModel is the persistence model for an income statement
type IncomeStatementModel struct {
	BaseModel
	PeriodStart       time.Time       `gorm:"type:date;not null;index"`
	PeriodEnd         time.Time       `gorm:"type:date;not null;index"`
	Revenue           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostOfGoodsSold   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OperatingExpenses decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InterestExpense   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherIncome       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxExpense        decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	GrossProfit     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OperatingIncome decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IncomeBeforeTax decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetIncome       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrossMargin     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OperatingMargin decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetMargin       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (IncomeStatementModel) TableName() string {
	return "income_statements"
}

// ToDomain converts the persistence model to a domain IncomeStatement
func (m *IncomeStatementModel) ToDomain() *finance.IncomeStatement {
	return &finance.IncomeStatement{
		BaseEntity:        m.BaseModel.ToDomain(),
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		Revenue:           m.Revenue,
		CostOfGoodsSold:   m.CostOfGoodsSold,
		OperatingExpenses: m.OperatingExpenses,
		InterestExpense:   m.InterestExpense,
		OtherIncome:       m.OtherIncome,
		TaxExpense:        m.TaxExpense,
		Notes:             m.Notes,
		GrossProfit:       m.GrossProfit,
		OperatingIncome:   m.OperatingIncome,
		IncomeBeforeTax:   m.IncomeBeforeTax,
		NetIncome:         m.NetIncome,
		GrossMargin:       m.GrossMargin,
		OperatingMargin:   m.OperatingMargin,
		NetMargin:         m.NetMargin,
	}
}

// IncomeStatementModelFromDomain creates a persistence model from a domain IncomeStatement
func IncomeStatementModelFromDomain(s *finance.IncomeStatement) *IncomeStatementModel {
	m := &IncomeStatementModel{
		PeriodStart:       dateOnly(s.PeriodStart),
		PeriodEnd:         dateOnly(s.PeriodEnd),
		Revenue:           s.Revenue,
		CostOfGoodsSold:   s.CostOfGoodsSold,
		OperatingExpenses: s.OperatingExpenses,
		InterestExpense:   s.InterestExpense,
		OtherIncome:       s.OtherIncome,
		TaxExpense:        s.TaxExpense,
		GrossProfit:       s.GrossProfit,
		OperatingIncome:   s.OperatingIncome,
		IncomeBeforeTax:   s.IncomeBeforeTax,
		NetIncome:         s.NetIncome,
		GrossMargin:       s.GrossMargin,
		OperatingMargin:   s.OperatingMargin,
		NetMargin:         s.NetMargin,
		Notes:             s.Notes,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// WorkingCapitalModel is the persistence model for a working capital snapshot
type WorkingCapitalModel struct {
	BaseModel
	AsOfDate time.Time `gorm:"type:date;not null;index"`

	Cash                    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountsReceivable      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Inventory               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherCurrentAssets      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountsPayable         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ShortTermDebt           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccruedLiabilities      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OtherCurrentLiabilities decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	TotalCurrentAssets      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCurrentLiabilities decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WorkingCapital          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentRatio            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuickRatio              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes                   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WorkingCapitalModel) TableName() string {
	return "working_capital"
}

// ToDomain converts the persistence model to a domain WorkingCapital
func (m *WorkingCapitalModel) ToDomain() *finance.WorkingCapital {
	return &finance.WorkingCapital{
		BaseEntity: m.BaseModel.ToDomain(),
		AsOfDate:   m.AsOfDate,
		WorkingCapitalLines: finance.WorkingCapitalLines{
			Cash:                    m.Cash,
			AccountsReceivable:      m.AccountsReceivable,
			Inventory:               m.Inventory,
			OtherCurrentAssets:      m.OtherCurrentAssets,
			AccountsPayable:         m.AccountsPayable,
			ShortTermDebt:           m.ShortTermDebt,
			AccruedLiabilities:      m.AccruedLiabilities,
			OtherCurrentLiabilities: m.OtherCurrentLiabilities,
		},
		Notes:                   m.Notes,
		TotalCurrentAssets:      m.TotalCurrentAssets,
		TotalCurrentLiabilities: m.TotalCurrentLiabilities,
		NetWorkingCapital:       m.WorkingCapital,
		CurrentRatio:            m.CurrentRatio,
		QuickRatio:              m.QuickRatio,
	}
}

// WorkingCapitalModelFromDomain creates a persistence model from a domain WorkingCapital
func WorkingCapitalModelFromDomain(wc *finance.WorkingCapital) *WorkingCapitalModel {
	l := wc.WorkingCapitalLines
	m := &WorkingCapitalModel{
		AsOfDate:                dateOnly(wc.AsOfDate),
		Cash:                    l.Cash,
		AccountsReceivable:      l.AccountsReceivable,
		Inventory:               l.Inventory,
		OtherCurrentAssets:      l.OtherCurrentAssets,
		AccountsPayable:         l.AccountsPayable,
		ShortTermDebt:           l.ShortTermDebt,
		AccruedLiabilities:      l.AccruedLiabilities,
		OtherCurrentLiabilities: l.OtherCurrentLiabilities,
		TotalCurrentAssets:      wc.TotalCurrentAssets,
		TotalCurrentLiabilities: wc.TotalCurrentLiabilities,
		WorkingCapital:          wc.NetWorkingCapital,
		CurrentRatio:            wc.CurrentRatio,
		QuickRatio:              wc.QuickRatio,
		Notes:                   wc.Notes,
	}
	m.FromDomainBaseEntity(wc.BaseEntity)
	return m
}
