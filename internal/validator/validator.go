// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dreinfinity/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// cnpjRegex accepts both the formatted (00.000.000/0000-00) and the bare
// 14-digit form of a Brazilian company registration number.
var cnpjRegex = regexp.MustCompile(`^(\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}|\d{14})$`)

var knownMetrics = func() map[string]bool {
	m := make(map[string]bool, len(models.KnownMetrics))
	for _, name := range models.KnownMetrics {
		m[name] = true
	}
	return m
}()

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("cnpj", validateCNPJ)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("cost_classification", validateCostClassification)
		_ = v.RegisterValidation("expense_subtype", validateExpenseSubtype)
		_ = v.RegisterValidation("tax_regime", validateTaxRegime)
		_ = v.RegisterValidation("metric_name", validateMetricName)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCNPJ(fl validator.FieldLevel) bool {
	return cnpjRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "administrative", "operational":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "revenue", "cost", "expense":
		return true
	}
	return false
}

func validateCostClassification(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "variable":
		return true
	}
	return false
}

func validateExpenseSubtype(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "operational", "financial":
		return true
	}
	return false
}

func validateTaxRegime(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "simples_nacional", "lucro_presumido", "lucro_real":
		return true
	}
	return false
}

func validateMetricName(fl validator.FieldLevel) bool {
	return knownMetrics[fl.Field().String()]
}
