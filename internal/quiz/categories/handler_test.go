package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/shared"
)

type noopAuthRepo struct{}

func (noopAuthRepo) FindByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	return nil, shared.ErrNotFound
}

func (noopAuthRepo) RecordLogin(ctx context.Context, id, username, ip, ua string, at time.Time) error {
	return nil
}

type mockRepository struct {
	nextID     int64
	categorias map[int64]Categoria
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, categorias: map[int64]Categoria{}}
}

func (m *mockRepository) List(_ context.Context, filters shared.ListFilters) ([]Categoria, error) {
	filters = filters.Normalize()
	var result []Categoria
	for _, c := range m.categorias {
		if filters.Search != "" && !strings.Contains(strings.ToLower(c.Titulo), strings.ToLower(filters.Search)) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Titulo < result[j].Titulo })
	if filters.Offset() >= len(result) {
		return nil, nil
	}
	result = result[filters.Offset():]
	if len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Categoria, error) {
	c, ok := m.categorias[id]
	if !ok {
		return Categoria{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) Create(_ context.Context, c Categoria) (Categoria, error) {
	c.CategoriaID = m.nextID
	m.nextID++
	m.categorias[c.CategoriaID] = c
	return c, nil
}

func (m *mockRepository) Update(_ context.Context, c Categoria) error {
	if _, ok := m.categorias[c.CategoriaID]; !ok {
		return shared.ErrNotFound
	}
	m.categorias[c.CategoriaID] = c
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.categorias[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.categorias, id)
	return nil
}

func newCategoriesRouter(t *testing.T, repo Repository) (http.Handler, *auth.TokenCodec) {
	t.Helper()
	codec := auth.NewTokenCodec([]byte("test-signing-key"), time.Hour)
	authService := auth.NewService(nil, noopAuthRepo{}, codec, auth.NewLoginLimiter(nil, 0, 0))
	handler := NewHandler(nil, NewService(repo), auth.Middleware{Service: authService})

	r := chi.NewRouter()
	r.Route("/categoria", handler.MountRoutes)
	return r, codec
}

func doRequest(t *testing.T, router http.Handler, codec *auth.TokenCodec, method, path string, roles []string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if roles != nil {
		token, err := codec.Issue("tester", roles, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateCategoriaAssignsNewID(t *testing.T) {
	router, codec := newCategoriesRouter(t, newMockRepository())

	rr := doRequest(t, router, codec, http.MethodPost, "/categoria/", []string{auth.RoleAdmin},
		`{"titulo":"Programacion","descripcion":"Lenguajes y algoritmos"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var created Categoria
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.CategoriaID)
	assert.Equal(t, "Programacion", created.Titulo)
	assert.Equal(t, "Lenguajes y algoritmos", created.Descripcion)
}

func TestCreateCategoriaRequiresAdmin(t *testing.T) {
	repo := newMockRepository()
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodPost, "/categoria/", []string{auth.RoleNormal},
		`{"titulo":"Intrusa","descripcion":"no deberia existir"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, repo.categorias)
}

func TestCreateCategoriaRejectsBlankTitle(t *testing.T) {
	router, codec := newCategoriesRouter(t, newMockRepository())

	rr := doRequest(t, router, codec, http.MethodPost, "/categoria/", []string{auth.RoleAdmin},
		`{"titulo":"  ","descripcion":"sin titulo"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListCategoriasForAnyPrincipal(t *testing.T) {
	repo := newMockRepository()
	repo.Create(context.Background(), Categoria{Titulo: "Historia", Descripcion: "Eventos"})
	repo.Create(context.Background(), Categoria{Titulo: "Ciencias", Descripcion: "Naturales"})
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodGet, "/categoria/", []string{auth.RoleNormal}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result []Categoria
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "Ciencias", result[0].Titulo)
}

func TestListCategoriasPagesThroughResults(t *testing.T) {
	repo := newMockRepository()
	repo.Create(context.Background(), Categoria{Titulo: "Algebra", Descripcion: ""})
	repo.Create(context.Background(), Categoria{Titulo: "Biologia", Descripcion: ""})
	repo.Create(context.Background(), Categoria{Titulo: "Quimica", Descripcion: ""})
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodGet, "/categoria/?page=1&limit=2", []string{auth.RoleNormal}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var firstPage []Categoria
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firstPage))
	require.Len(t, firstPage, 2)
	assert.Equal(t, "Algebra", firstPage[0].Titulo)
	assert.Equal(t, "Biologia", firstPage[1].Titulo)

	rr = doRequest(t, router, codec, http.MethodGet, "/categoria/?page=2&limit=2", []string{auth.RoleNormal}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var secondPage []Categoria
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &secondPage))
	require.Len(t, secondPage, 1)
	assert.Equal(t, "Quimica", secondPage[0].Titulo)
}

func TestListCategoriasEmptyIsArray(t *testing.T) {
	router, codec := newCategoriesRouter(t, newMockRepository())

	rr := doRequest(t, router, codec, http.MethodGet, "/categoria/", []string{auth.RoleNormal}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCategoriaRoutesRequireToken(t *testing.T) {
	router, codec := newCategoriesRouter(t, newMockRepository())

	rr := doRequest(t, router, codec, http.MethodGet, "/categoria/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateCategoria(t *testing.T) {
	repo := newMockRepository()
	created, err := repo.Create(context.Background(), Categoria{Titulo: "Matematicas", Descripcion: "Numeros"})
	require.NoError(t, err)
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodPut, "/categoria/", []string{auth.RoleAdmin},
		`{"categoriaId":1,"titulo":"Matematicas avanzadas","descripcion":"Numeros"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	stored, err := repo.Get(context.Background(), created.CategoriaID)
	require.NoError(t, err)
	assert.Equal(t, "Matematicas avanzadas", stored.Titulo)
}

func TestDeleteCategoriaThenGetNotFound(t *testing.T) {
	repo := newMockRepository()
	created, err := repo.Create(context.Background(), Categoria{Titulo: "Temporal", Descripcion: "se borra"})
	require.NoError(t, err)
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodDelete, "/categoria/1", []string{auth.RoleAdmin}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, codec, http.MethodGet, "/categoria/1", []string{auth.RoleNormal}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	_, err = repo.Get(context.Background(), created.CategoriaID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteCategoriaTwiceIsNotFoundNotFault(t *testing.T) {
	repo := newMockRepository()
	_, err := repo.Create(context.Background(), Categoria{Titulo: "Unica", Descripcion: ""})
	require.NoError(t, err)
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodDelete, "/categoria/1", []string{auth.RoleAdmin}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, codec, http.MethodDelete, "/categoria/1", []string{auth.RoleAdmin}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteCategoriaRequiresAdmin(t *testing.T) {
	repo := newMockRepository()
	_, err := repo.Create(context.Background(), Categoria{Titulo: "Protegida", Descripcion: ""})
	require.NoError(t, err)
	router, codec := newCategoriesRouter(t, repo)

	rr := doRequest(t, router, codec, http.MethodDelete, "/categoria/1", []string{auth.RoleNormal}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Len(t, repo.categorias, 1)
}
