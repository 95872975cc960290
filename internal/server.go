package internal

import (
	"bmlpay/config"
	"bmlpay/entity"
	"bmlpay/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const (
	createTransaction   = "/transactions"
	checkoutRequest     = "/checkout/:reference"
	paymentNotify       = "/notify"
	paymentReturn       = "/return"
	compatibleProviders = "/providers/compatible"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(createTransaction, s.createTransaction)
	router.GET(checkoutRequest, s.checkoutRequest)
	router.POST(paymentNotify, s.paymentNotify)
	router.GET(paymentReturn, s.paymentReturn)
	router.POST(compatibleProviders, s.compatibleProviders)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] create transaction: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var transaction entity.Transaction
	err = json.Unmarshal(body, &transaction)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] create transaction: decode request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = s.payments.RegisterTransaction(ctx, &transaction)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] create transaction %s", reqID, transaction.Reference), err)
		w.WriteHeader(s.errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) checkoutRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	reference := ps.ByName("reference")
	if reference == "" {
		s.logger.Warn(fmt.Sprintf("[%s] empty transaction reference", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	request, err := s.payments.CheckoutRequest(ctx, reference)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] checkout request %s", reqID, reference), err)
		w.WriteHeader(s.errorStatus(err))
		return
	}

	s.writeJson(w, reqID, request)
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = s.payments.Notify(ctx, body)
	if err != nil {
		// A rejected notification gets a non-200 so the gateway retries it;
		// business-level failures were applied and acknowledged above.
		s.logger.Error(fmt.Sprintf("[%s] payment notify: process body", reqID), err)
		w.WriteHeader(s.errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) paymentReturn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	err := s.payments.VerifyReturn(ctx, r.URL.Query())
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment return", reqID), err)
		w.WriteHeader(s.errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

type compatibilityRequest struct {
	Currency  string   `json:"currency"`
	Providers []string `json:"providers"`
}

func (s *Server) compatibleProviders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] compatible providers: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request compatibilityRequest
	err = json.Unmarshal(body, &request)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] compatible providers: decode request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	providers := s.payments.CompatibleProviders(request.Currency, request.Providers)
	s.writeJson(w, reqID, providers)
}

func (s *Server) writeJson(w http.ResponseWriter, reqID string, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode response", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(response)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] write response", reqID), err)
	}
}

func (s *Server) errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownReference):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingReference),
		errors.Is(err, ErrMalformedNotification),
		errors.Is(err, ErrUnsupportedCurrency),
		errors.Is(err, ErrTransactionClosed):
		return http.StatusBadRequest
	case errors.Is(err, ErrSignatureMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
