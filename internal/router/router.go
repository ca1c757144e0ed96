// Package router selects which gateway should handle a payment request,
// per spec.md §4.2.
package router

import (
	"context"
	"fmt"
	"sort"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/gateway"
	"payment-orchestrator/internal/model"
)

// Router ranks registered gateways and selects the cheapest available one
// that supports a request's currency.
type Router struct {
	gateways []gateway.Modern
}

// New builds a Router over gateways, in registration order. Registration
// order is used as the stable tie-break when two gateways quote the same
// commission.
func New(gateways ...gateway.Modern) *Router {
	return &Router{gateways: gateways}
}

// SelectOptimal filters registered gateways down to those that support
// request.Currency and report themselves available right now, then
// returns the one with the lowest commission. Ties break on registration
// order. Returns apperrors.ErrNoGatewayAvailable if none qualify.
func (r *Router) SelectOptimal(ctx context.Context, request model.PaymentRequest) (gateway.Modern, error) {
	type candidate struct {
		gw   gateway.Modern
		rank int
	}

	var candidates []candidate
	for i, gw := range r.gateways {
		if !gw.SupportsCurrency(request.Currency) {
			continue
		}
		if !gw.IsAvailable(ctx) {
			continue
		}
		candidates = append(candidates, candidate{gw: gw, rank: i})
	}

	if len(candidates) == 0 {
		return nil, apperrors.ErrNoGatewayAvailable
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i].gw.GetCommission(request.Currency), candidates[j].gw.GetCommission(request.Currency)
		if !ci.Equal(cj) {
			return ci.LessThan(cj)
		}
		return candidates[i].rank < candidates[j].rank
	})

	return candidates[0].gw, nil
}

// GetByName looks up a registered gateway by exact name match. It neither
// mutates router state nor suspends — used by refund/status flows that
// must replay against the gateway a transaction originally used.
func (r *Router) GetByName(name string) (gateway.Modern, error) {
	for _, gw := range r.gateways {
		if gw.Name() == name {
			return gw, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrGatewayNotFound, name)
}
