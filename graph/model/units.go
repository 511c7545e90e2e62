package model

import "fmt"

type HeightUnit string

const (
	HeightUnitMeter      HeightUnit = "METER"
	HeightUnitCentimeter HeightUnit = "CENTIMETER"
	HeightUnitFoot       HeightUnit = "FOOT"
)

type WeightUnit string

const (
	WeightUnitKilogram WeightUnit = "KILOGRAM"
	WeightUnitPound    WeightUnit = "POUND"
	WeightUnitGram     WeightUnit = "GRAM"
)

const (
	centimetersPerMeter = 100
	centimetersPerFoot  = 30.48
	poundsPerKilogram   = 2.2
	gramsPerKilogram    = 1000
)

// UnitError - запрошена единица, которую мы не умеем конвертировать
type UnitError struct {
	Quantity string
	Unit     string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s unit %q not supported", e.Quantity, e.Unit)
}

// ConvertHeight переводит рост из сантиметров в unit. Пустая единица = CENTIMETER.
func ConvertHeight(cm float64, unit HeightUnit) (float64, error) {
	switch unit {
	case "", HeightUnitCentimeter:
		return cm, nil
	case HeightUnitMeter:
		return cm / centimetersPerMeter, nil
	case HeightUnitFoot:
		return cm / centimetersPerFoot, nil
	default:
		return 0, &UnitError{Quantity: "height", Unit: string(unit)}
	}
}

// HeightToCentimeters - обратное преобразование к ConvertHeight
func HeightToCentimeters(value float64, unit HeightUnit) (float64, error) {
	switch unit {
	case "", HeightUnitCentimeter:
		return value, nil
	case HeightUnitMeter:
		return value * centimetersPerMeter, nil
	case HeightUnitFoot:
		return value * centimetersPerFoot, nil
	default:
		return 0, &UnitError{Quantity: "height", Unit: string(unit)}
	}
}

// ConvertWeight переводит вес из килограммов в unit. Пустая единица = KILOGRAM.
func ConvertWeight(kg float64, unit WeightUnit) (float64, error) {
	switch unit {
	case "", WeightUnitKilogram:
		return kg, nil
	case WeightUnitPound:
		return kg * poundsPerKilogram, nil
	case WeightUnitGram:
		return kg * gramsPerKilogram, nil
	default:
		return 0, &UnitError{Quantity: "weight", Unit: string(unit)}
	}
}

func WeightToKilograms(value float64, unit WeightUnit) (float64, error) {
	switch unit {
	case "", WeightUnitKilogram:
		return value, nil
	case WeightUnitPound:
		return value / poundsPerKilogram, nil
	case WeightUnitGram:
		return value / gramsPerKilogram, nil
	default:
		return 0, &UnitError{Quantity: "weight", Unit: string(unit)}
	}
}
