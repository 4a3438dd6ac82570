package services

import (
	"github.com/shopspring/decimal"

	"julex/internal/domain"
)

func stamp() string { return domain.Now() }

func money(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
