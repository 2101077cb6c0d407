package http

import (
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// Request bodies.

type createOrderRequest struct {
	Channel string             `json:"channel"`
	Lines   []orderLineRequest `json:"lines"`
}

type orderLineRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	UnitCost  int64  `json:"unit_cost"`
}

type updateStatusRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
}

type assignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

type handoverRequest struct {
	CourierPartner    string `json:"courier_partner"`
	TrackingCode      string `json:"tracking_code"`
	DestinationBranch string `json:"destination_branch,omitempty"`
	DeliveryVariant   string `json:"delivery_variant,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type bulkUpdateRequest struct {
	OrderIDs []string `json:"order_ids"`
	Target   string   `json:"target"`
	Reason   string   `json:"reason,omitempty"`
}

// Response bodies.

type orderResponse struct {
	ID                string           `json:"id"`
	Status            string           `json:"status"`
	Channel           string           `json:"channel"`
	RiderID           string           `json:"rider_id,omitempty"`
	CourierPartner    string           `json:"courier_partner,omitempty"`
	TrackingCode      string           `json:"tracking_code,omitempty"`
	DestinationBranch string           `json:"destination_branch,omitempty"`
	StatusReason      string           `json:"status_reason,omitempty"`
	TotalAmount       int64            `json:"total_amount"`
	Warnings          []warningDTO     `json:"warnings,omitempty"`
	Trigger           *triggerDTO      `json:"trigger,omitempty"`
	Lines             []orderLineReply `json:"lines"`
}

type orderLineReply struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type warningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type triggerDTO struct {
	Action  string `json:"action"`
	Applied bool   `json:"applied"`
	Failure string `json:"failure,omitempty"`
}

type bulkUpdateResponse struct {
	Succeeded []string          `json:"succeeded"`
	Failed    []bulkFailureItem `json:"failed"`
}

type bulkFailureItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type activeOrderItem struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Channel      string `json:"channel"`
	TotalAmount  int64  `json:"total_amount"`
	StatusReason string `json:"status_reason,omitempty"`
}

type movementItem struct {
	VariantID     string    `json:"variant_id"`
	Delta         int       `json:"delta"`
	BalanceBefore int       `json:"balance_before"`
	BalanceAfter  int       `json:"balance_after"`
	Kind          string    `json:"kind"`
	ActorID       string    `json:"actor_id"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// rejectionResponse is the structured rejection shape returned for every
// validator rejection: {valid: false, code, message, missingFields?,
// insufficientItems?}.
type rejectionResponse struct {
	Valid             bool               `json:"valid"`
	Code              string             `json:"code"`
	Message           string             `json:"message"`
	MissingFields     []string           `json:"missingFields,omitempty"`
	Hint              string             `json:"hint,omitempty"`
	InsufficientItems []insufficientItem `json:"insufficientItems,omitempty"`
}

type insufficientItem struct {
	VariantID string `json:"variant_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Shortfall int    `json:"shortfall"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toOrderResponse(result *commands.TransitionResult) orderResponse {
	o := result.Order

	resp := orderResponse{
		ID:                o.ID().String(),
		Status:            o.Status().String(),
		Channel:           o.FulfillmentType().String(),
		CourierPartner:    o.CourierPartner(),
		TrackingCode:      o.TrackingCode(),
		DestinationBranch: o.DestinationBranch(),
		StatusReason:      o.StatusReason(),
		TotalAmount:       o.TotalAmount().Int64(),
	}
	if riderID := o.RiderID(); riderID != nil {
		resp.RiderID = riderID.String()
	}

	for _, l := range o.Lines() {
		resp.Lines = append(resp.Lines, orderLineReply{
			VariantID: l.VariantID().String(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().Int64(),
		})
	}

	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, warningDTO{Code: w.Code, Message: w.Message})
	}

	if result.Trigger.Action != services.TriggerNone {
		t := &triggerDTO{
			Action:  result.Trigger.Action.String(),
			Applied: result.Trigger.Applied,
		}
		if result.Trigger.Err != nil {
			t.Failure = result.Trigger.Err.Error()
		}
		resp.Trigger = t
	}

	return resp
}

func toActiveOrderItems(rows []queries.GetActiveOrdersQueryResponse) []activeOrderItem {
	items := make([]activeOrderItem, len(rows))
	for i, r := range rows {
		items[i] = activeOrderItem{
			ID:           r.ID.String(),
			Status:       r.Status.String(),
			Channel:      r.FulfillmentType.String(),
			TotalAmount:  r.TotalAmount,
			StatusReason: r.StatusReason,
		}
	}
	return items
}

func toMovementItems(rows []queries.GetStockMovementsQueryResponse) []movementItem {
	items := make([]movementItem, len(rows))
	for i, r := range rows {
		items[i] = movementItem{
			VariantID:     r.VariantID.String(),
			Delta:         r.Delta,
			BalanceBefore: r.BalanceBefore,
			BalanceAfter:  r.BalanceAfter,
			Kind:          r.Kind.String(),
			ActorID:       r.ActorID.String(),
			RecordedAt:    r.RecordedAt,
		}
	}
	return items
}

func parseDeliveryVariant(s string) order.DeliveryVariant {
	if s == "" {
		return order.UnknownVariant
	}
	v, err := order.DeliveryVariantFromString(s)
	if err != nil {
		return order.UnknownVariant
	}
	return v
}
