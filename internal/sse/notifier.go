package sse

import (
	"time"

	"github.com/pasarlink/pasar-api/internal/models"
)

// Notifier is the interface services use to emit live events.
type Notifier interface {
	NotifyOrderPaid(order *models.Order)
	NotifyShipmentUpdated(orderNo string, shipment *models.Shipment)
	NotifyChatMessage(msg *models.ChatMessage)
}

// HubNotifier implements Notifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyOrderPaid(order *models.Order) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:     EventOrderPaid,
		OrderNo:   order.OrderNo,
		Status:    string(order.Status),
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyShipmentUpdated(orderNo string, shipment *models.Shipment) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:      EventShipmentUpdated,
		OrderNo:    orderNo,
		Status:     string(shipment.Status),
		TrackingNo: shipment.TrackingNo,
		Timestamp:  time.Now(),
	})
}

func (n *HubNotifier) NotifyChatMessage(msg *models.ChatMessage) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:          EventChatMessage,
		Topic:          msg.ConversationID,
		ConversationID: msg.ConversationID,
		Sender:         string(msg.Sender),
		Body:           msg.Body,
		Timestamp:      time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyOrderPaid(order *models.Order)                             {}
func (n *NopNotifier) NotifyShipmentUpdated(orderNo string, shipment *models.Shipment) {}
func (n *NopNotifier) NotifyChatMessage(msg *models.ChatMessage)                       {}
