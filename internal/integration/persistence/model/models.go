package model

// All returns every model of the schema, in migration order.
func All() []any {
	return []any{
		&DealerModel{},
		&DealerUserModel{},
		&VehicleModel{},
		&ExpenseModel{},
		&SaleModel{},
		&FinancialAccountModel{},
		&AccountTransactionModel{},
		&DebtModel{},
		&DebtPaymentModel{},
	}
}
