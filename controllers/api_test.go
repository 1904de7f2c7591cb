package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/controllers"
	"salondesk-backend/models"
	"salondesk-backend/realtime"
	"salondesk-backend/routes"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouterWithLimit(t *testing.T, publicLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SESSION_SECRET", "test-secret")

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Appointment{},
		&models.Service{},
		&models.Category{},
		&models.Staff{},
		&models.Client{},
		&models.LoyaltyRedemption{},
		&models.Product{},
		&models.Charge{},
		&models.ExpenseCategory{},
		&models.StaffDeduction{},
		&models.AdminRole{},
		&models.BusinessSettings{},
		&models.PushSubscription{},
	))
	config.SetDB(db)

	hub := realtime.NewHub()
	go hub.Run()
	controllers.Init(hub, nil, nil)
	controllers.Lockout = utils.NewLoginLockout(5, 15*time.Minute)
	routes.PublicLimiter = utils.NewFixedWindowLimiter(publicLimit, time.Minute)

	return routes.SetupRouter()
}

func setupRouter(t *testing.T) *gin.Engine {
	return setupRouterWithLimit(t, 1000)
}

func httpDo(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// authCookie builds a session cookie for a freshly stored role.
func authCookie(t *testing.T, permissions ...string) *http.Cookie {
	t.Helper()
	role := models.AdminRole{
		Name:        "tester-" + uuid.NewString(),
		Role:        "owner",
		PIN:         "unused",
		Permissions: models.StringList(permissions),
	}
	if role.Permissions == nil {
		role.Permissions = models.StringList{}
	}
	require.NoError(t, config.DB.Create(&role).Error)

	token, err := utils.GenerateSessionToken(&role)
	require.NoError(t, err)
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func seedStaff(t *testing.T, name string) models.Staff {
	t.Helper()
	staff := models.Staff{Name: name}
	require.NoError(t, config.DB.Create(&staff).Error)
	return staff
}

func seedService(t *testing.T, service models.Service) models.Service {
	t.Helper()
	require.NoError(t, config.DB.Create(&service).Error)
	return service
}

func TestPublicBookingForcedUnpaid(t *testing.T) {
	r := setupRouter(t)
	seedStaff(t, "Amina")
	seedService(t, models.Service{Name: "Haircut", Price: 40, Duration: 30})

	// The client claims it already paid and names its own price. Neither
	// survives the public channel.
	w := httpDo(t, r, "POST", "/api/public/appointments", gin.H{
		"date":        "2024-06-01",
		"startTime":   "10:00",
		"duration":    240,
		"clientName":  "Walk-in",
		"serviceName": "Haircut",
		"staffName":   "Amina",
		"price":       1,
		"total":       1,
		"paid":        true,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Appointment
	require.NoError(t, config.DB.Where("client_name = ?", "Walk-in").First(&stored).Error)
	require.False(t, stored.Paid)
	require.Equal(t, 40.0, stored.Price)
	require.Equal(t, 40.0, stored.Total)
	require.Equal(t, 30, stored.Duration)
}

func TestPublicBookingConflict(t *testing.T) {
	r := setupRouter(t)
	seedStaff(t, "Amina")
	seedService(t, models.Service{Name: "Haircut", Price: 40, Duration: 30})

	booking := gin.H{
		"date":        "2024-06-01",
		"startTime":   "10:00",
		"duration":    30,
		"clientName":  "First",
		"serviceName": "Haircut",
		"staffName":   "Amina",
	}
	require.Equal(t, http.StatusCreated, httpDo(t, r, "POST", "/api/public/appointments", booking, nil).Code)

	booking["clientName"] = "Second"
	require.Equal(t, http.StatusConflict, httpDo(t, r, "POST", "/api/public/appointments", booking, nil).Code)

	// Back to back is fine.
	booking["startTime"] = "10:30"
	require.Equal(t, http.StatusCreated, httpDo(t, r, "POST", "/api/public/appointments", booking, nil).Code)
}

func TestPublicAvailability(t *testing.T) {
	r := setupRouter(t)
	staff := seedStaff(t, "Amina")
	require.NoError(t, config.DB.Create(&models.Appointment{
		Date:      "2024-06-01",
		StartTime: "10:00",
		Duration:  30,
		StaffID:   staff.ID,
		StaffName: staff.Name,
	}).Error)

	w := httpDo(t, r, "GET", "/api/public/availability?staff=Amina&date=2024-06-01&duration=30", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Slots []string `json:"slots"`
	}
	decode(t, w, &body)
	require.NotContains(t, body.Slots, "10:00")
	require.Contains(t, body.Slots, "09:30")
	require.Contains(t, body.Slots, "10:30")

	// A dashboard booking that starts before opening still blocks the
	// slots it spills into.
	require.NoError(t, config.DB.Create(&models.Appointment{
		Date:      "2024-06-02",
		StartTime: "08:30",
		Duration:  60,
		StaffID:   staff.ID,
		StaffName: staff.Name,
	}).Error)

	w = httpDo(t, r, "GET", "/api/public/availability?staff=Amina&date=2024-06-02&duration=30", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	require.NotContains(t, body.Slots, "09:00")
	require.Contains(t, body.Slots, "09:30")
}

func TestPaidTransitionSideEffects(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t)
	seedStaff(t, "Amina")

	product := models.Product{Name: "Hair Serum", Quantity: 3}
	require.NoError(t, config.DB.Create(&product).Error)
	seedService(t, models.Service{
		Name:                    "Treatment",
		Price:                   100,
		Duration:                60,
		LinkedProductID:         &product.ID,
		LoyaltyPointsMultiplier: 1,
	})
	client := models.Client{Name: "Fatima", Phone: "+15550001111"}
	require.NoError(t, config.DB.Create(&client).Error)

	w := httpDo(t, r, "POST", "/api/appointments", gin.H{
		"date":        "2024-06-01",
		"startTime":   "11:00",
		"duration":    60,
		"clientName":  "Fatima",
		"clientId":    client.ID,
		"serviceName": "Treatment",
		"staffName":   "Amina",
		"price":       100,
		"total":       100,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Appointment
	decode(t, w, &created)

	w = httpDo(t, r, "PUT", "/api/appointments/"+created.ID.String(), gin.H{"paid": true}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var paid models.Appointment
	decode(t, w, &paid)
	require.Equal(t, 100, paid.LoyaltyPointsEarned)

	require.NoError(t, config.DB.First(&product, "id = ?", product.ID).Error)
	require.Equal(t, 2, product.Quantity)

	require.NoError(t, config.DB.First(&client, "id = ?", client.ID).Error)
	require.Equal(t, 100, client.LoyaltyPoints)
	require.Equal(t, 1, client.TotalVisits)
	require.Equal(t, 100.0, client.TotalSpent)

	// Marking an already-paid appointment paid again is a no-op for stock
	// and loyalty.
	w = httpDo(t, r, "PUT", "/api/appointments/"+created.ID.String(), gin.H{"paid": true}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&product, "id = ?", product.ID).Error)
	require.Equal(t, 2, product.Quantity)
	require.NoError(t, config.DB.First(&client, "id = ?", client.ID).Error)
	require.Equal(t, 100, client.LoyaltyPoints)
	require.Equal(t, 1, client.TotalVisits)
}

func TestRescheduleConflict(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t)
	staff := seedStaff(t, "Amina")

	first := models.Appointment{Date: "2024-06-01", StartTime: "10:00", Duration: 30, StaffID: staff.ID, StaffName: staff.Name}
	second := models.Appointment{Date: "2024-06-01", StartTime: "11:00", Duration: 30, StaffID: staff.ID, StaffName: staff.Name}
	require.NoError(t, config.DB.Create(&first).Error)
	require.NoError(t, config.DB.Create(&second).Error)

	w := httpDo(t, r, "PUT", "/api/appointments/"+second.ID.String(), gin.H{"startTime": "10:00"}, cookie)
	require.Equal(t, http.StatusConflict, w.Code)

	w = httpDo(t, r, "PUT", "/api/appointments/"+second.ID.String(), gin.H{"startTime": "10:30"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRedeemLoyaltyPoints(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t)

	client := models.Client{Name: "Fatima", LoyaltyPoints: 50}
	require.NoError(t, config.DB.Create(&client).Error)

	// Over the balance: rejected without mutation.
	w := httpDo(t, r, "POST", "/api/clients/"+client.ID.String()+"/redeem", gin.H{"points": 100}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, config.DB.First(&client, "id = ?", client.ID).Error)
	require.Equal(t, 50, client.LoyaltyPoints)

	w = httpDo(t, r, "POST", "/api/clients/"+client.ID.String()+"/redeem", gin.H{"points": 30, "reward": "Free blowout"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&client, "id = ?", client.ID).Error)
	require.Equal(t, 20, client.LoyaltyPoints)

	var redemptions []models.LoyaltyRedemption
	require.NoError(t, config.DB.Find(&redemptions).Error)
	require.Len(t, redemptions, 1)
	require.Equal(t, 30, redemptions[0].Points)
}

func TestPublicRateLimit(t *testing.T) {
	r := setupRouterWithLimit(t, 3)
	seedStaff(t, "Amina")

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, httpDo(t, r, "GET", "/api/public/staff", nil, nil).Code)
	}

	w := httpDo(t, r, "GET", "/api/public/staff", nil, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		RetryAfter int `json:"retryAfter"`
	}
	decode(t, w, &body)
	require.GreaterOrEqual(t, body.RetryAfter, 1)
}

func TestVerifyPINAndLockout(t *testing.T) {
	r := setupRouter(t)

	hashed, err := utils.HashPIN("1234")
	require.NoError(t, err)
	require.NoError(t, config.DB.Create(&models.AdminRole{
		Name:        "Owner",
		Role:        "owner",
		PIN:         hashed,
		Permissions: models.StringList{},
	}).Error)

	wrong := gin.H{"name": "Owner", "pin": "0000"}
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusUnauthorized, httpDo(t, r, "POST", "/api/admin-roles/verify-pin", wrong, nil).Code)
	}

	// Budget spent: even the right PIN is refused until the lockout lapses.
	w := httpDo(t, r, "POST", "/api/admin-roles/verify-pin", gin.H{"name": "Owner", "pin": "1234"}, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var locked struct {
		LockoutSeconds int `json:"lockoutSeconds"`
	}
	decode(t, w, &locked)
	require.Greater(t, locked.LockoutSeconds, 0)

	controllers.Lockout = utils.NewLoginLockout(5, 15*time.Minute)

	w = httpDo(t, r, "POST", "/api/admin-roles/verify-pin", gin.H{"name": "Owner", "pin": "1234"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	require.True(t, session.HttpOnly)

	w = httpDo(t, r, "GET", "/api/me", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	decode(t, w, &me)
	require.Equal(t, "Owner", me.Name)
	require.Equal(t, "owner", me.Role)
}

func TestPermissionGate(t *testing.T) {
	r := setupRouter(t)

	// No session at all.
	require.Equal(t, http.StatusUnauthorized, httpDo(t, r, "GET", "/api/appointments", nil, nil).Code)

	// A scoped role reaches only its own surface.
	scoped := authCookie(t, "services")
	require.Equal(t, http.StatusOK, httpDo(t, r, "GET", "/api/services", nil, scoped).Code)
	require.Equal(t, http.StatusForbidden, httpDo(t, r, "GET", "/api/appointments", nil, scoped).Code)

	// An empty permission list means no restrictions configured.
	full := authCookie(t)
	require.Equal(t, http.StatusOK, httpDo(t, r, "GET", "/api/appointments", nil, full).Code)
	require.Equal(t, http.StatusOK, httpDo(t, r, "GET", "/api/payroll", nil, full).Code)
}

func TestAdjustProductNeverNegative(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t, "inventory")

	product := models.Product{Name: "Shampoo", Quantity: 3}
	require.NoError(t, config.DB.Create(&product).Error)

	w := httpDo(t, r, "POST", "/api/products/"+product.ID.String()+"/adjust", gin.H{"delta": -5}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, config.DB.First(&product, "id = ?", product.ID).Error)
	require.Equal(t, 3, product.Quantity)

	w = httpDo(t, r, "POST", "/api/products/"+product.ID.String()+"/adjust", gin.H{"delta": -2}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var adjusted models.Product
	decode(t, w, &adjusted)
	require.Equal(t, 1, adjusted.Quantity)
}

func TestBusinessSettingsSingleton(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t, "settings")

	w := httpDo(t, r, "GET", "/api/business-settings", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.BusinessSettings
	decode(t, w, &settings)
	require.Equal(t, "09:00", settings.OpeningTime)

	w = httpDo(t, r, "PUT", "/api/business-settings", gin.H{"openingTime": "08:00"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.BusinessSettings{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	decode(t, w, &settings)
	require.Equal(t, "08:00", settings.OpeningTime)
}

func TestExportCSV(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t, "export")
	seedService(t, models.Service{Name: "Haircut", Price: 40, Duration: 30})

	w := httpDo(t, r, "GET", "/api/export/services", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Header().Get("Content-Disposition"), "services")
	require.Contains(t, w.Body.String(), "Haircut")

	require.Equal(t, http.StatusNotFound, httpDo(t, r, "GET", "/api/export/nonsense", nil, cookie).Code)
}

func TestPayrollEndpoint(t *testing.T) {
	r := setupRouter(t)
	cookie := authCookie(t, "payroll")
	staff := seedStaff(t, "Amina")
	seedService(t, models.Service{Name: "Haircut", Price: 99, Duration: 30, CommissionPercent: 50})

	for _, date := range []string{"2024-06-01", "2024-06-02"} {
		require.NoError(t, config.DB.Create(&models.Appointment{
			Date: date, StartTime: "10:00", Duration: 30,
			StaffID: staff.ID, StaffName: staff.Name,
			ServiceName: "Haircut", Total: 99, Paid: true,
		}).Error)
	}

	w := httpDo(t, r, "GET", "/api/payroll?from=2024-06-01&to=2024-06-30", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TotalRevenue    float64 `json:"totalRevenue"`
		TotalCommission float64 `json:"totalCommission"`
	}
	decode(t, w, &report)
	require.Equal(t, 198.0, report.TotalRevenue)
	require.Equal(t, 100.0, report.TotalCommission)
}
