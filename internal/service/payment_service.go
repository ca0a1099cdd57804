package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"coachsite-be/internal/config"
	"coachsite-be/internal/dto"
	"coachsite-be/internal/entity"
	"coachsite-be/internal/pkg/apperrors"
	"coachsite-be/internal/pkg/logger"
	"coachsite-be/internal/repository/unitofwork"
	"coachsite-be/pkg/events"
	pktNats "coachsite-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	Checkout(ctx context.Context, userId string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetMembershipStatus(ctx context.Context, userId string) (*dto.MembershipStatusResponse, error)
}

type paymentService struct {
	cfg            *config.Config
	uowFactory     unitofwork.RepositoryFactory
	settings       ISettingsService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewPaymentService(
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	settings ISettingsService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IPaymentService {
	return &paymentService{
		cfg:            cfg,
		uowFactory:     uowFactory,
		settings:       settings,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

// Checkout creates a pending order and a Snap transaction for it. The
// membership itself is only granted by the settlement webhook.
func (s *paymentService) Checkout(ctx context.Context, userId string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.MembershipRepository().FindActiveByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Validation("membership already active", nil)
	}

	siteSettings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	amount := siteSettings.MembershipPrice

	orderId := uuid.New()
	order := &entity.PaymentOrder{
		Id:        orderId,
		OrderCode: fmt.Sprintf("MBR-%s", orderId.String()),
		UserId:    userId,
		Amount:    amount,
		Status:    entity.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.App.Environment == "production" {
		env = midtrans.Production
	}
	sClient.New(s.cfg.Keys.MidtransServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/membership?payment=success", s.cfg.App.ClientURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "membership",
				Price: amount,
				Qty:   1,
				Name:  "Coaching Membership",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, apperrors.ServiceUnavailable("payment gateway unavailable", midErr)
	}

	order.SnapToken = snapResp.Token
	order.RedirectURL = snapResp.RedirectURL

	if err := uow.PaymentOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderId:         order.Id,
		OrderCode:       order.OrderCode,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

// HandleNotification validates the gateway signature and applies the status
// transition. Settlement grants the member role; failure terminates the
// order. Unknown and pending statuses are acknowledged without action.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := s.cfg.Keys.MidtransServerKey
	if serverKey == "" {
		return apperrors.Configuration("payment gateway not configured")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.logger.Warn("payment", "webhook signature mismatch", map[string]interface{}{
			"order_code": req.OrderId,
		})
		return apperrors.Unauthorized("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.PaymentOrderRepository().FindByOrderCode(ctx, req.OrderId)
	if err != nil {
		return err
	}
	if order == nil {
		return apperrors.NotFound("order not found")
	}

	var newStatus string
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.OrderStatusPaid
	case "deny", "cancel":
		newStatus = entity.OrderStatusFailed
	case "expire":
		newStatus = entity.OrderStatusExpired
	default:
		return nil
	}

	if order.Status == newStatus {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	order.Status = newStatus
	if newStatus == entity.OrderStatusPaid {
		order.PaidAt = &now
	}
	if err := uow.PaymentOrderRepository().Update(ctx, order); err != nil {
		return err
	}

	if newStatus == entity.OrderStatusPaid {
		expiresAt := now.AddDate(0, 1, 0)
		membership := &entity.Membership{
			Id:          uuid.New(),
			UserId:      order.UserId,
			Role:        entity.RoleMember,
			Status:      entity.MembershipStatusActive,
			OrderId:     order.Id,
			ActivatedAt: now,
			ExpiresAt:   &expiresAt,
			CreatedAt:   now,
		}
		if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("payment", "order status updated", map[string]interface{}{
		"order_code": order.OrderCode,
		"status":     newStatus,
	})

	if newStatus == entity.OrderStatusPaid && s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeMembershipGranted,
			Data: map[string]interface{}{
				"user_id":    order.UserId,
				"order_code": order.OrderCode,
				"amount":     order.Amount,
			},
			OccurredAt: now,
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("payment", "failed to publish event", map[string]interface{}{
				"event": evt.Type,
				"error": err.Error(),
			})
		}
	}

	return nil
}

func (s *paymentService) GetMembershipStatus(ctx context.Context, userId string) (*dto.MembershipStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	membership, err := uow.MembershipRepository().FindActiveByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return &dto.MembershipStatusResponse{Active: false}, nil
	}

	// Lazy expiry: flip the record the first time it is read past its end.
	if membership.ExpiresAt != nil && membership.ExpiresAt.Before(time.Now()) {
		membership.Status = entity.MembershipStatusExpired
		if err := uow.MembershipRepository().Update(ctx, membership); err != nil {
			return nil, err
		}
		return &dto.MembershipStatusResponse{Active: false, Status: entity.MembershipStatusExpired}, nil
	}

	return &dto.MembershipStatusResponse{
		Active:    true,
		Status:    membership.Status,
		ExpiresAt: membership.ExpiresAt,
	}, nil
}
