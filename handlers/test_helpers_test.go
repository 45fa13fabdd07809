package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"itrack_admin/config"
	"itrack_admin/db"
	"itrack_admin/models"
	"itrack_admin/services"
	"itrack_admin/services/masterdata"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.RegionDraft{},
		&models.RegionExport{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	services.Storage = services.NewLocalStorage(t.TempDir())

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

// formBody encodes key/value pairs as an urlencoded request body
func formBody(pairs ...string) io.Reader {
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		values = append(values, pairs[i]+"="+pairs[i+1])
	}
	return strings.NewReader(strings.Join(values, "&"))
}

func asHTMX(c echo.Context) {
	c.Request().Header.Set("HX-Request", "true")
}

func asJSON(c echo.Context) {
	c.Request().Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
}

const (
	regionSeven = `{"region_id": 7, "region_name": "Bengaluru Central", "company_id": 9, "country_id": 1,
		"state_id": "KA", "district_id": "BLR", "active": true, "pincodes": ["560002"]}`
	regionEight = `{"region_id": "8", "region_name": "Mysuru Ring", "company_id": 12, "country_id": 1,
		"state_id": "KA", "district_id": "MYS", "active": 0, "pincodes": []}`
)

// masterDataStub is a fake Master Data Service serving the Bengaluru data set
type masterDataStub struct {
	mu           sync.Mutex
	createStatus int
	deleteStatus int
	created      []map[string]interface{}
	updated      map[string]map[string]interface{}
	deleted      []string
	authHeaders  []string
}

func newMasterDataStub(t *testing.T) *masterDataStub {
	stub := &masterDataStub{
		createStatus: http.StatusCreated,
		deleteStatus: http.StatusOK,
		updated:      map[string]map[string]interface{}{},
	}
	server := httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(server.Close)

	SetMasterDataClient(masterdata.New(server.URL, 2*time.Second))
	return stub
}

func (s *masterDataStub) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))

	switch {
	case r.URL.Path == "/admin/companies":
		w.Write([]byte(`{"data": [{"company_id": 9, "name": "Acme Field Services"}]}`))
	case r.URL.Path == "/settings/countries":
		w.Write([]byte(`{"data": [{"country_id": 1, "country_name": "India"}]}`))
	case r.URL.Path == "/settings/states":
		w.Write([]byte(`{"data": [{"state_id": "KA", "state_name": "Karnataka", "country_id": 1}]}`))
	case r.URL.Path == "/settings/districts":
		w.Write([]byte(`{"data": [{"district_id": "BLR", "district_name": "Bengaluru", "state_id": "KA"}]}`))
	case r.URL.Path == "/settings/pincodes":
		w.Write([]byte(`{"data": [
			{"pincode": "560001", "district_id": "BLR", "assigned": false},
			{"pincode": "560002", "district_id": "BLR", "assigned": "true"},
			{"pincode": "560003", "district_id": "BLR", "assigned": 0}
		]}`))
	case r.URL.Path == "/masters/regions" && r.Method == http.MethodGet:
		w.Write([]byte(`{"data": [` + regionSeven + `, ` + regionEight + `], "total": 2}`))
	case r.URL.Path == "/masters/regions" && r.Method == http.MethodPost:
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		s.created = append(s.created, body)
		w.WriteHeader(s.createStatus)
		if s.createStatus >= 400 {
			w.Write([]byte(`{"message": "rejected"}`))
			return
		}
		w.Write([]byte(`{"data": {"region_id": 55}}`))
	case r.URL.Path == "/masters/regions/7" && r.Method == http.MethodGet:
		w.Write([]byte(`{"data": ` + regionSeven + `}`))
	case r.URL.Path == "/masters/regions/7" && r.Method == http.MethodPut:
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		s.updated["7"] = body
		w.Write([]byte(`{"data": ` + regionSeven + `}`))
	case strings.HasPrefix(r.URL.Path, "/masters/regions/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, "/masters/regions/")
		if s.deleteStatus >= 400 {
			w.WriteHeader(s.deleteStatus)
			return
		}
		s.deleted = append(s.deleted, id)
		w.Write([]byte(`{"data": null}`))
	default:
		http.NotFound(w, r)
	}
}

func (s *masterDataStub) lastCreated() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.created) == 0 {
		return nil
	}
	return s.created[len(s.created)-1]
}
