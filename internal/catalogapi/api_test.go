package catalogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursedesk/coursedesk/config"
	"github.com/coursedesk/coursedesk/internal/catalog"
	"github.com/coursedesk/coursedesk/internal/domain"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

type fakeCourseRepo struct {
	courses []domain.Course

	listCalls   int
	findCalls   int
	patchCalls  int
	searchCalls int

	lastQuery string
	lastPatch map[string]interface{}

	err error
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id int) (*domain.Course, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.courses {
		if f.courses[i].ID == id {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCourseRepo) Patch(ctx context.Context, id int, patch map[string]interface{}) (*domain.Course, error) {
	f.patchCalls++
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.courses {
		if f.courses[i].ID != id {
			continue
		}
		c := &f.courses[i]
		if v, ok := patch["topic"]; ok {
			c.Topic = cast.ToString(v)
		}
		if v, ok := patch["location"]; ok {
			c.Location = cast.ToString(v)
		}
		if v, ok := patch["price"]; ok {
			c.Price = cast.ToInt(v)
		}
		if v, ok := patch["spaces"]; ok {
			c.Spaces = cast.ToInt(v)
		}
		out := *c
		return &out, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCourseRepo) Search(ctx context.Context, query string) ([]domain.Course, error) {
	f.searchCalls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

type fakeOrderRepo struct {
	insertCalls int
	lastOrder   *domain.Order
	err         error
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *domain.Order) (string, error) {
	f.insertCalls++
	f.lastOrder = order
	if f.err != nil {
		return "", f.err
	}
	return "656f5e1f8f1b2c3d4e5f6a7b", nil
}

type fakeBrowser struct {
	docs      []map[string]interface{}
	listCalls int
	lastName  string
	err       error
}

func (f *fakeBrowser) ListAll(ctx context.Context, name string) ([]map[string]interface{}, error) {
	f.listCalls++
	f.lastName = name
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type fakeApp struct {
	cfg     *config.AppConfig
	courses *fakeCourseRepo
	orders  *fakeOrderRepo
	browser *fakeBrowser
}

func (f *fakeApp) Database() *mongo.Database            { return nil }
func (f *fakeApp) Config() *config.AppConfig            { return f.cfg }
func (f *fakeApp) CourseRepo() catalog.CourseRepository { return f.courses }
func (f *fakeApp) OrderRepo() catalog.OrderRepository   { return f.orders }
func (f *fakeApp) Browser() catalog.CollectionBrowser   { return f.browser }
func (f *fakeApp) Scheduler() *cron.Cron                { return nil }

func newFakeApp() *fakeApp {
	cfg := config.LoadConfig("")
	return &fakeApp{
		cfg:     cfg,
		courses: &fakeCourseRepo{},
		orders:  &fakeOrderRepo{},
		browser: &fakeBrowser{},
	}
}

func newTestContext(t *testing.T, fa *fakeApp, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.AppContextKey, fa)
	return c, rec
}
