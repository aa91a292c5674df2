package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/lojinha/api/pkg/kafka"

	"github.com/lojinha/api/internal/domain"
)

// Kafka topics for the domain events this service publishes.
const (
	TopicCartUpdated    = "carrinho.atualizado"
	TopicCartRemoved    = "carrinho.removido"
	TopicUserRegistered = "usuario.registrado"
)

// Aggregate type constants.
const (
	AggregateTypeCart = "carrinho"
	AggregateTypeUser = "usuario"
)

// Source identifier for events originating from this service.
const Source = "lojinha-api"

// CartUpdatedData is the payload for a carrinho.atualizado event.
type CartUpdatedData struct {
	UserID string            `json:"usuarioId"`
	Items  []domain.CartItem `json:"itens"`
	Total  float64           `json:"total"`
}

// CartRemovedData is the payload for a carrinho.removido event.
type CartRemovedData struct {
	UserID string `json:"usuarioId"`
}

// UserRegisteredData is the payload for a usuario.registrado event.
type UserRegisteredData struct {
	UserID string `json:"usuarioId"`
	Email  string `json:"email"`
	Name   string `json:"nome"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a carrinho.atualizado event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		UserID: cart.UserID,
		Items:  cart.Items,
		Total:  cart.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create carrinho.atualizado event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish carrinho.atualizado event: %w", err)
	}

	p.logger.DebugContext(ctx, "published carrinho.atualizado event",
		slog.String("user_id", cart.UserID),
		slog.Int("items", len(cart.Items)),
	)

	return nil
}

// PublishCartRemoved publishes a carrinho.removido event.
func (p *Producer) PublishCartRemoved(ctx context.Context, userID string) error {
	data := CartRemovedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicCartRemoved, userID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create carrinho.removido event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartRemoved, event); err != nil {
		return fmt.Errorf("publish carrinho.removido event: %w", err)
	}

	p.logger.DebugContext(ctx, "published carrinho.removido event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishUserRegistered publishes a usuario.registrado event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, data.UserID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create usuario.registrado event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish usuario.registrado event: %w", err)
	}

	p.logger.DebugContext(ctx, "published usuario.registrado event",
		slog.String("user_id", data.UserID),
	)

	return nil
}
