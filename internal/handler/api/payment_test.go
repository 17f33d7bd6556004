//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"wild-oasis-api/internal/handler/api"
	resdto "wild-oasis-api/internal/handler/dto/response"
	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/internal/usecase/commands"
	"wild-oasis-api/tests/common/builder"
	"wild-oasis-api/tests/common/httptest"
	"wild-oasis-api/tests/common/testutil"
	commandsmock "wild-oasis-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
	guestID      uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, config.StripeConfig{
		PublishableKey: "pk_test_visible",
		Currency:       "usd",
	})
	s.guestID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("guest_id", s.guestID)
		c.Set("guest_email", "guest@example.com")
		c.Set("guest_name", "Test Guest")
		c.Next()
	}

	s.router.POST("/create-payment-intent", authMiddleware, s.handler.CreatePaymentIntent)
	s.router.GET("/payment/config", s.handler.GetConfig)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

type testCasePayment struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreatePaymentIntent
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCreatePaymentIntent() {
	url := "/create-payment-intent"

	b := builder.NewBookingBuilder().WithGuestID(s.guestID)
	reqBody := b.BuildCreatePaymentIntentDTO()
	expectedResult := &commands.PaymentIntentResult{
		PaymentIntentID: "pi_test_123",
		ClientSecret:    "pi_test_123_secret_abc",
	}

	validationTestCases := []testCasePayment{
		{name: "missing field: amount (required)", mutate: testutil.Field("amount", nil), expectCode: http.StatusBadRequest},
		{name: "amount invalid (0)", mutate: testutil.Field("amount", 0), expectCode: http.StatusBadRequest},
		{name: "amount invalid (negative)", mutate: testutil.Field("amount", -100), expectCode: http.StatusBadRequest},
		{name: "missing field: currency (required)", mutate: testutil.Field("currency", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: bookingData (required)", mutate: testutil.Field("bookingData", nil), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with client secret", func() {
		s.mockCommands.EXPECT().CreateIntent(gomock.Any(), reqBody, s.guestID).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CreatePaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedResult.ClientSecret, response.ClientSecret)
		s.Equal(expectedResult.PaymentIntentID, response.PaymentIntentID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validationTestCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "cabin not found",
				commandsError:  commands.ErrCabinNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Cabin not found",
			},
			{
				name:           "invalid booking data",
				commandsError:  commands.ErrInvalidBookingData,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking data",
			},
			{
				name:           "amount mismatch",
				commandsError:  commands.ErrAmountMismatch,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Amount does not match the priced stay",
			},
			{
				name:           "intent creation failed",
				commandsError:  commands.ErrPaymentIntentFailed,
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateIntent(gomock.Any(), reqBody, s.guestID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetConfig
// ================================================================================

func (s *PaymentHandlerTestSuite) TestGetConfig() {
	s.Run("success: exposes the publishable key and currency without auth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payment/config", nil, "")

		var response resdto.PaymentConfigResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pk_test_visible", response.PublishableKey)
		s.Equal("usd", response.Currency)
	})
}
