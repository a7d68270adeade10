package catalog

import "github.com/dmitrijs2005/ledgerbook/internal/client/models"

var (
	expense = []models.RecordType{models.RecordTypeExpense}
	income  = []models.RecordType{models.RecordTypeIncome}
)

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(
		[]Entry{
			{Code: string(models.RecordTypeExpense), Label: "Expense"},
			{Code: string(models.RecordTypeIncome), Label: "Income"},
		},
		[]CategoryEntry{
			{Entry: Entry{Code: "MEAL", Label: "Meals"}, Types: expense},
			{Entry: Entry{Code: "DAILY_NECESSARIES", Label: "Daily necessities"}, Types: expense},
			{Entry: Entry{Code: "SHOPPING", Label: "Shopping"}, Types: expense},
			{Entry: Entry{Code: "CULTURE", Label: "Culture"}, Types: expense},
			{Entry: Entry{Code: "HEALTH", Label: "Health"}, Types: expense},
			{Entry: Entry{Code: "EDUCATION", Label: "Education"}, Types: expense},
			{Entry: Entry{Code: "TRAFFIC", Label: "Transport"}, Types: expense},
			{Entry: Entry{Code: "MOBILE", Label: "Phone"}, Types: expense},
			{Entry: Entry{Code: "SAVING", Label: "Savings"}, Types: expense},
			{Entry: Entry{Code: "EVENT", Label: "Family events"}, Types: expense},
			{Entry: Entry{Code: "SALARY", Label: "Salary"}, Types: income},
			{Entry: Entry{Code: "BONUS", Label: "Bonus"}, Types: income},
			{Entry: Entry{Code: "ADDITIONAL_INCOME", Label: "Side income"}, Types: income},
			{Entry: Entry{Code: "ALLOWANCE", Label: "Allowance"}, Types: income},
			{Entry: Entry{Code: "ETC", Label: "Other"}, Types: expense},
			{Entry: Entry{Code: "ETC", Label: "Other"}, Types: income},
		},
		[]Entry{
			{Code: string(models.PaymentTypeCard), Label: "Card"},
			{Code: string(models.PaymentTypeTransfer), Label: "Bank transfer"},
			{Code: string(models.PaymentTypeCash), Label: "Cash"},
			{Code: string(models.PaymentTypeOther), Label: "Other"},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}
