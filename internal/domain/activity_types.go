package domain

import "fmt"

// ActivityType - закрытый набор типов активностей в плане дня
type ActivityType string

const (
	ActivityVisit         ActivityType = "visit"
	ActivityMeal          ActivityType = "meal"
	ActivityTransport     ActivityType = "transport"
	ActivityAccommodation ActivityType = "accommodation"
	ActivityExperience    ActivityType = "experience"
)

// AllActivityTypes возвращает все поддерживаемые типы активностей
func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityVisit,
		ActivityMeal,
		ActivityTransport,
		ActivityAccommodation,
		ActivityExperience,
	}
}

// Valid проверяет, что тип входит в закрытый набор
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityVisit, ActivityMeal, ActivityTransport, ActivityAccommodation, ActivityExperience:
		return true
	}
	return false
}

// ParseActivityType разбирает строку из сгенерированного ответа
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown activity type: %q", s)
	}
	return t, nil
}

// ExpenseCategory - закрытый набор категорий расходов
type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseActivities    ExpenseCategory = "activities"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

// AllExpenseCategories возвращает все категории расходов
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseFood,
		ExpenseTransport,
		ExpenseAccommodation,
		ExpenseActivities,
		ExpenseShopping,
		ExpenseOther,
	}
}

// Valid проверяет, что категория входит в закрытый набор
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseFood, ExpenseTransport, ExpenseAccommodation, ExpenseActivities, ExpenseShopping, ExpenseOther:
		return true
	}
	return false
}

// PaymentMethod - способ оплаты расхода
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// Valid проверяет, что способ оплаты входит в закрытый набор
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}
