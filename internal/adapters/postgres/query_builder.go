package postgres

import (
	"fmt"
	"strings"

	"car-market-service/internal/core/domain"
)

// numericExpr строит SQL-выражение для числового сравнения по полю,
// которое источники присылают как текст ("$15,500", "120,000 km").
// Сначала берется нормализованная колонка, заполненная при приеме события;
// для старых строк, где ее нет, цифры выжимаются из сырого текста прямо в запросе.
func numericExpr(normColumn, rawColumn string) string {
	return fmt.Sprintf(
		"COALESCE(%s, CAST(NULLIF(REGEXP_REPLACE(%s, '[^0-9]', '', 'g'), '') AS BIGINT))",
		normColumn, rawColumn,
	)
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// addSubstringFilter - регистронезависимый поиск подстроки.
func (qb *queryBuilder) addSubstringFilter(fieldName, value string) {
	if value != "" {
		qb.addCondition("%s ILIKE $%d", fieldName, "%"+value+"%")
	}
}

// AddFilter принимает указатели на float64 и int
func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// build создает финальную WHERE-часть запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFilters - главный метод, который разбирает фильтры и строит запрос
func applyFilters(filters domain.SearchFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	// Свободный текст: одно значение ищется сразу в трех колонках.
	// Плейсхолдер один и тот же - аргумент связывается один раз.
	if filters.Query != "" {
		condition := fmt.Sprintf(
			"(v.title ILIKE $%d OR v.brand ILIKE $%d OR v.model ILIKE $%d)",
			qb.argId, qb.argId, qb.argId,
		)
		qb.conditions = append(qb.conditions, condition)
		qb.args = append(qb.args, "%"+filters.Query+"%")
		qb.argId++
	}

	// Текстовые фильтры: поиск подстроки, как и в свободном тексте
	qb.addSubstringFilter("v.brand", filters.Brand)
	qb.addSubstringFilter("v.model", filters.Model)
	qb.addSubstringFilter("v.fuel_type", filters.FuelType)
	qb.addSubstringFilter("v.transmission", filters.Transmission)
	qb.addSubstringFilter("v.body_type", filters.BodyType)
	qb.addSubstringFilter("v.location", filters.Location)

	// Числовые диапазоны, границы включительно
	qb.AddIntFilter("v.year", filters.YearMin, filters.YearMax)
	qb.AddFloatFilter(numericExpr("v.price_amount", "v.price"), filters.PriceMin, filters.PriceMax)
	qb.AddFloatFilter(numericExpr("v.mileage_km", "v.mileage"), nil, filters.MileageMax)

	return qb.build()
}

// resolveSort переводит ключ сортировки в ORDER BY.
// Неизвестный ключ трактуется как id; направление по умолчанию - убывание.
// NULL-значения (объявления без цены/пробега) при возрастании идут первыми,
// при убывании - последними, то есть всегда сортируются как "меньше всех".
func resolveSort(sort domain.SortSpec) string {
	var expr string
	switch sort.Field {
	case "price":
		expr = numericExpr("v.price_amount", "v.price")
	case "mileage":
		expr = numericExpr("v.mileage_km", "v.mileage")
	case "year":
		expr = "v.year"
	default:
		expr = "v.vehicle_id"
	}

	// Вторичный ключ по vehicle_id дает стабильный порядок при равных значениях
	if strings.EqualFold(sort.Direction, "asc") {
		return fmt.Sprintf("ORDER BY %s ASC NULLS FIRST, v.vehicle_id ASC", expr)
	}
	return fmt.Sprintf("ORDER BY %s DESC NULLS LAST, v.vehicle_id DESC", expr)
}
