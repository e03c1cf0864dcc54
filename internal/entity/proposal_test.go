package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	oneTime, monthly := ComputeTotals([]ServiceSelection{
		{ID: "web", Price: 2500, Recurring: false},
		{ID: "automation", Price: 997, Recurring: true},
	})
	assert.Equal(t, int64(2500), oneTime)
	assert.Equal(t, int64(997), monthly)

	oneTime, monthly = ComputeTotals(nil)
	assert.Equal(t, int64(0), oneTime)
	assert.Equal(t, int64(0), monthly)
}

func TestDepositAmountRoundsUp(t *testing.T) {
	p := &Proposal{OneTimeTotal: 2500, MonthlyTotal: 997}
	assert.Equal(t, int64(3497), p.FullAmount())
	assert.Equal(t, int64(1749), p.DepositAmount())

	even := &Proposal{OneTimeTotal: 1000}
	assert.Equal(t, int64(500), even.DepositAmount())

	odd := &Proposal{OneTimeTotal: 1001}
	assert.Equal(t, int64(501), odd.DepositAmount())
}

func TestClientName(t *testing.T) {
	p := &Proposal{FirstName: "Grace", LastName: "Hopper"}
	assert.Equal(t, "Grace Hopper", p.ClientName())
}
