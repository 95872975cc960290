package internal

import (
	"bmlpay/config"
	"bmlpay/entity"
	"bmlpay/services"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Payments composes the signer, the compatibility filter and the reconciler
// into the service the HTTP layer talks to. It uses fine-grained locking per
// merchant reference so duplicate gateway callbacks for the same transaction
// serialize before the state apply, while unrelated transactions proceed in
// parallel.
type Payments struct {
	conf        *config.Config
	credentials entity.Credentials
	tables      *entity.CodeTables
	signer      *Signer
	filter      *CompatibilityFilter
	reconciler  *Reconciler
	database    services.Database
	logger      services.LogHandler
	locks       sync.Map // map[string]*sync.Mutex for per-reference locking
}

func NewPayments(conf *config.Config) *Payments {
	tables := entity.NewCodeTables(conf.Provider.Currencies)
	return &Payments{
		conf: conf,
		credentials: entity.Credentials{
			MerchantId: conf.Provider.MerchantId,
			AcquirerId: conf.Provider.AcquirerId,
			Passcode:   conf.Provider.Passcode,
			LiveUrl:    conf.Provider.LiveUrl,
			TestUrl:    conf.Provider.TestUrl,
			Mode:       conf.Provider.Mode,
		},
		tables:     tables,
		signer:     NewSigner(),
		filter:     NewCompatibilityFilter(conf.Provider.Code, tables),
		reconciler: NewReconciler(tables),
		locks:      sync.Map{},
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
	p.reconciler.SetDatabase(database)
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	p.reconciler.SetLogger(logger)
}

// lockReference acquires a lock for a specific merchant reference.
func (p *Payments) lockReference(reference string) *sync.Mutex {
	value, _ := p.locks.LoadOrStore(reference, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex
}

func (p *Payments) unlockReference(reference string, mutex *sync.Mutex) {
	mutex.Unlock()
	p.locks.Delete(reference)
}

// RegisterTransaction stores a new pending transaction in the ledger. The
// reference becomes the OrderID sent to the gateway and must be unique.
func (p *Payments) RegisterTransaction(ctx context.Context, transaction *entity.Transaction) error {
	if p.database == nil {
		return fmt.Errorf("database not set")
	}
	if transaction.Reference == "" {
		return ErrMissingReference
	}
	if transaction.ProviderCode == "" {
		transaction.ProviderCode = p.conf.Provider.Code
	}
	transaction.State = entity.StatePending
	transaction.TimeCreated = time.Now()
	return p.database.SaveTransaction(ctx, transaction)
}

// CheckoutRequest builds the signed redirect payload for the hosted payment
// page. Any configuration or validation failure aborts before a signature is
// produced; a partial payload never reaches the gateway.
func (p *Payments) CheckoutRequest(ctx context.Context, reference string) (*entity.SignedRequest, error) {
	mutex := p.lockReference(reference)
	defer p.unlockReference(reference, mutex)

	transaction, err := p.reconciler.Resolve(ctx, reference)
	if err != nil {
		return nil, err
	}
	if transaction.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTransactionClosed, reference, transaction.State)
	}
	if !p.filter.IsCompatible(transaction.Currency) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, transaction.Currency)
	}
	currencyNumeric, ok := p.tables.CurrencyNumeric(transaction.Currency)
	if !ok {
		return nil, fmt.Errorf("%w: no numeric code for %s", ErrUnsupportedCurrency, transaction.Currency)
	}

	params := entity.OrderParams{
		OrderId: transaction.Reference,
		// The gateway expects the amount without a decimal point, scaled by
		// the fixed exponent. Decimal arithmetic avoids float drift on the
		// signed value.
		AmountMinor:     decimal.NewFromFloat(transaction.Amount).Shift(entity.CurrencyExponent).Round(0).IntPart(),
		CurrencyNumeric: currencyNumeric,
		ReturnUrl:       p.returnUrl(transaction.Reference),
	}

	signature, err := p.signer.PaymentRequestSignature(&p.credentials, params.OrderId, params.AmountMinor, params.CurrencyNumeric)
	if err != nil {
		return nil, err
	}

	request := &entity.SignedRequest{
		ApiUrl:                   p.credentials.ApiUrl(),
		Version:                  p.conf.Provider.Version,
		MerchantId:               p.credentials.MerchantId,
		AcquirerId:               p.credentials.AcquirerId,
		OrderId:                  params.OrderId,
		PurchaseAmount:           strconv.FormatInt(params.AmountMinor, 10),
		PurchaseCurrency:         params.CurrencyNumeric,
		PurchaseCurrencyExponent: strconv.Itoa(entity.CurrencyExponent),
		SignatureMethod:          "SHA1",
		ResponseUrl:              params.ReturnUrl,
		Signature:                signature,
	}

	p.logger.Info(fmt.Sprintf("checkout request for %s: %s %s", reference, request.PurchaseAmount, transaction.Currency))
	return request, nil
}

func (p *Payments) returnUrl(reference string) string {
	returnUrl := p.conf.Provider.ReturnUrl
	if returnUrl == "" {
		return ""
	}
	return fmt.Sprintf("%s?reference=%s", returnUrl, url.QueryEscape(reference))
}

// Notify processes a server-to-server payment notification from the gateway.
// When the notification carries a signature it is checked against the
// notification-path correlation signature before any state is applied.
func (p *Payments) Notify(ctx context.Context, data []byte) error {
	params, err := url.ParseQuery(string(data))
	if err != nil {
		p.logger.Info(string(data))
		return fmt.Errorf("parse query: %w", err)
	}

	notification := readNotification(params)
	if notification.Signature != "" {
		expected, err := p.signer.CorrelationSignature(&p.credentials, notification.OrderId, false)
		if err != nil {
			return err
		}
		if notification.Signature != expected {
			return fmt.Errorf("%w: notification for %s", ErrSignatureMismatch, notification.OrderId)
		}
	}

	return p.process(ctx, notification)
}

// VerifyReturn processes the buyer's redirect back from the gateway. The
// redirect leg is always signed; its correlation signature uses SHA-256.
func (p *Payments) VerifyReturn(ctx context.Context, query url.Values) error {
	notification := readNotification(query)
	if notification.OrderId == "" {
		return ErrMissingReference
	}

	expected, err := p.signer.CorrelationSignature(&p.credentials, notification.OrderId, true)
	if err != nil {
		return err
	}
	if notification.Signature != expected {
		return fmt.Errorf("%w: redirect for %s", ErrSignatureMismatch, notification.OrderId)
	}

	return p.process(ctx, notification)
}

// process reconciles the notification and applies the outcome exactly once.
// Validation and classification happen before any write; recording the
// gateway reference and the state change is a single atomic apply.
func (p *Payments) process(ctx context.Context, notification *entity.Notification) error {
	if p.database == nil {
		return fmt.Errorf("database not set")
	}

	if err := p.database.SaveNotification(ctx, notification); err != nil {
		p.logger.Error("save notification", err)
	}

	mutex := p.lockReference(notification.OrderId)
	defer p.unlockReference(notification.OrderId, mutex)

	transaction, outcome, err := p.reconciler.Reconcile(ctx, notification)
	if err != nil {
		return err
	}

	applied, err := p.database.ApplyTransactionOutcome(ctx, transaction.Reference, notification.ReferenceNo, outcome.State, outcome.Message)
	if err != nil {
		return fmt.Errorf("apply outcome: %w", err)
	}
	if !applied {
		// Duplicate delivery against an already closed transaction; the
		// decision above is unchanged, nothing to do.
		p.logger.Warn(fmt.Sprintf("transaction %s already closed, notification ignored", transaction.Reference))
		return nil
	}

	p.logger.Info(fmt.Sprintf("transaction %s set to %s", transaction.Reference, outcome.State))
	return nil
}

// CompatibleProviders filters a candidate provider list for a transaction
// currency, removing this provider when the currency is unsupported.
func (p *Payments) CompatibleProviders(currency string, providers []string) []string {
	return p.filter.FilterProviders(currency, providers)
}

// readNotification extracts the known wire fields; extra fields are ignored.
func readNotification(params url.Values) *entity.Notification {
	return &entity.Notification{
		OrderId:      params.Get("OrderID"),
		ReferenceNo:  params.Get("ReferenceNo"),
		ResponseCode: params.Get("ResponseCode"),
		ReasonCode:   params.Get("ReasonCode"),
		ReasonText:   params.Get("ReasonText"),
		Signature:    params.Get("Signature"),
		TimeReceived: time.Now(),
	}
}
