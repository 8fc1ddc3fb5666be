package rest

import (
	"context"
	"net/http"
	"strconv"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/server"
	"lintang/congestionnav/pkg/server/rest/service"
	"lintang/congestionnav/pkg/simulation"
	"lintang/congestionnav/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/paulmach/orb/geojson"
)

type NavigationService interface {
	GraphInfo(ctx context.Context) (service.GraphInfo, error)
	PopulatedCells(ctx context.Context) (*geojson.FeatureCollection, error)
	Obstacles(ctx context.Context) (*geojson.FeatureCollection, error)
	AddObstacle(ctx context.Context) (int, error)
	ClearObstacles(ctx context.Context) error
	DragObstacle(ctx context.Context, idx int, lat, lon float64) error
	DragObstacleAt(ctx context.Context, lat, lon, toLat, toLon float64) (int, error)
	ReleaseObstacle(ctx context.Context, idx int) error
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, avoidObstacles bool) (service.ShortestPathResult, error)
	State(ctx context.Context) simulation.State
	Step(ctx context.Context, n int) (simulation.State, error)
	NewRound(ctx context.Context) (simulation.State, error)
	RoundsNearby(ctx context.Context, lat, lon, radiusKm float64) ([]simulation.RoundResult, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func NavigatorRouter(r chi.Router, svc NavigationService, m *metrics) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, promeMetrics: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/graph", func(r chi.Router) {
			r.Get("/", handler.graphInfo)
			r.Get("/cells", handler.populatedCells)
		})
		r.Route("/api/obstacles", func(r chi.Router) {
			r.Get("/", handler.obstacles)
			r.Post("/", handler.addObstacle)
			r.Delete("/", handler.clearObstacles)
			r.Post("/drag", handler.dragObstacleAt)
			r.Post("/{idx}/drag", handler.dragObstacle)
			r.Post("/{idx}/release", handler.releaseObstacle)
		})
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
		})
		r.Route("/api/simulation", func(r chi.Router) {
			r.Get("/agents", handler.agents)
			r.Post("/step", handler.step)
			r.Post("/round", handler.newRound)
		})
		r.Get("/api/rounds/nearby", handler.roundsNearby)
	})
}

func (h *NavigationHandler) validateStruct(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return false
	}
	return true
}

// GraphResponse model info
//
//	@Description	ringkasan road network yang sedang dipakai simulasi
type GraphResponse struct {
	Bounds    datastructure.Bounds `json:"bounds"`
	NumPoints int                  `json:"num_points"`
	NumEdges  int                  `json:"num_edges"`
	NumCells  int                  `json:"num_cells"`
	CellSize  float64              `json:"cell_size"`
}

// graphInfo
//
//	@Summary		bounding box dan ukuran graph.
//	@Tags			graph
//	@Produce		application/json
//	@Router			/graph [get]
//	@Success		200	{object}	GraphResponse
func (h *NavigationHandler) graphInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.GraphInfo(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, GraphResponse{
		Bounds:    info.Bounds,
		NumPoints: info.NumPoints,
		NumEdges:  info.NumEdges,
		NumCells:  info.NumCells,
		CellSize:  info.CellSize,
	})
}

// populatedCells
//
//	@Summary		cell grid yang dilewati jalan, GeoJSON FeatureCollection.
//	@Tags			graph
//	@Produce		application/json
//	@Router			/graph/cells [get]
func (h *NavigationHandler) populatedCells(w http.ResponseWriter, r *http.Request) {
	fc, err := h.svc.PopulatedCells(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, fc)
}

// obstacles
//
//	@Summary		obstacle (congestion zone) saat ini, GeoJSON FeatureCollection.
//	@Tags			obstacles
//	@Produce		application/json
//	@Router			/obstacles [get]
func (h *NavigationHandler) obstacles(w http.ResponseWriter, r *http.Request) {
	fc, err := h.svc.Obstacles(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, fc)
}

// ObstacleResponse model info
//
//	@Description	index obstacle yang baru dibuat
type ObstacleResponse struct {
	Index int `json:"index"`
}

// addObstacle
//
//	@Summary		tambah obstacle hexagon di cell random.
//	@Tags			obstacles
//	@Produce		application/json
//	@Router			/obstacles [post]
//	@Success		201	{object}	ObstacleResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) addObstacle(w http.ResponseWriter, r *http.Request) {
	idx, err := h.svc.AddObstacle(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ObstacleResponse{Index: idx})
}

// clearObstacles
//
//	@Summary		hapus semua obstacle.
//	@Tags			obstacles
//	@Router			/obstacles [delete]
//	@Success		204
func (h *NavigationHandler) clearObstacles(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearObstacles(r.Context()); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

// DragRequest model info
//
//	@Description	posisi baru center obstacle
type DragRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (s *DragRequest) Bind(r *http.Request) error {
	return nil
}

func obstacleIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrBadParamInput, "obstacle index must be an integer")
	}
	return idx, nil
}

// dragObstacle
//
//	@Summary		pindah obstacle manual, gerak otomatisnya berhenti sampai release.
//	@Tags			obstacles
//	@Param			idx		path	int			true	"index obstacle"
//	@Param			body	body	DragRequest	true	"posisi baru"
//	@Accept			application/json
//	@Router			/obstacles/{idx}/drag [post]
//	@Success		204
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		409	{object}	ErrResponse
func (h *NavigationHandler) dragObstacle(w http.ResponseWriter, r *http.Request) {
	idx, err := obstacleIndex(r)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	data := &DragRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	if err := h.svc.DragObstacle(r.Context(), idx, data.Lat, data.Lon); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

// DragAtRequest model info
//
//	@Description	ambil obstacle di titik (lat, lon) lalu pindahkan center-nya ke (to_lat, to_lon)
type DragAtRequest struct {
	Lat   float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon   float64 `json:"lon" validate:"gte=-180,lte=180"`
	ToLat float64 `json:"to_lat" validate:"gte=-90,lte=90"`
	ToLon float64 `json:"to_lon" validate:"gte=-180,lte=180"`
}

func (s *DragAtRequest) Bind(r *http.Request) error {
	return nil
}

// dragObstacleAt
//
//	@Summary		drag obstacle yang ada di bawah titik, tanpa perlu tahu index-nya.
//	@Description	obstacle tetap dalam mode drag sampai /obstacles/{idx}/release dipanggil.
//	@Tags			obstacles
//	@Param			body	body	DragAtRequest	true	"titik ambil dan posisi baru"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/obstacles/drag [post]
//	@Success		200	{object}	ObstacleResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) dragObstacleAt(w http.ResponseWriter, r *http.Request) {
	data := &DragAtRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	idx, err := h.svc.DragObstacleAt(r.Context(), data.Lat, data.Lon, data.ToLat, data.ToLon)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ObstacleResponse{Index: idx})
}

// releaseObstacle
//
//	@Summary		selesai drag, obstacle bergerak sendiri lagi.
//	@Tags			obstacles
//	@Param			idx	path	int	true	"index obstacle"
//	@Router			/obstacles/{idx}/release [post]
//	@Success		204
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) releaseObstacle(w http.ResponseWriter, r *http.Request) {
	idx, err := obstacleIndex(r)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	if err := h.svc.ReleaseObstacle(r.Context(), idx); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

// SortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 titik
type SortestPathRequest struct {
	SrcLat         float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon         float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	DstLat         float64 `json:"dst_lat" validate:"gte=-90,lte=90"`
	DstLon         float64 `json:"dst_lon" validate:"gte=-180,lte=180"`
	AvoidObstacles bool    `json:"avoid_obstacles"`
}

func (s *SortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query antara 2 titik
type ShortestPathResponse struct {
	Path      string                     `json:"path"`
	Nodes     []int64                    `json:"nodes"`
	Dist      float64                    `json:"distance"`
	Found     bool                       `json:"found"`
	Safe      bool                       `json:"safe"`
	Source    datastructure.Coordinate   `json:"source"`
	Target    datastructure.Coordinate   `json:"target"`
	SrcOnEdge datastructure.Coordinate   `json:"source_on_edge"`
	Route     []datastructure.Coordinate `json:"route,omitempty"`
	Alg       string                     `json:"algorithm"`
}

func NewShortestPathResponse(res service.ShortestPathResult, avoid bool) *ShortestPathResponse {
	alg := "A* Algorithm"
	if avoid {
		alg = "A* Algorithm (obstacle aware)"
	}
	return &ShortestPathResponse{
		Path:      res.Polyline,
		Nodes:     res.Nodes,
		Dist:      util.RoundFloat(res.Dist, 2),
		Found:     res.Found,
		Safe:      res.Safe,
		Source:    res.Source,
		Target:    res.Target,
		SrcOnEdge: res.SrcOnEdge,
		Route:     res.Route,
		Alg:       alg,
	}
}

// shortestPath
//
//	@Summary		shortest path query antara 2 titik, opsional menghindari obstacle.
//	@Description	titik request di-snap ke node terdekat. Dengan avoid_obstacles, safe=false artinya tidak ada rute aman dan rute biasa yang dikembalikan.
//	@Tags			navigations
//	@Param			body	body	SortestPathRequest	true	"request body query shortest path antara 2 titik"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &SortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}

	h.promeMetrics.SPQueryCount.WithLabelValues(strconv.FormatBool(data.AvoidObstacles)).Inc()
	res, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, data.AvoidObstacles)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res, data.AvoidObstacles))
}

// agents
//
//	@Summary		posisi dan metrics agent round sekarang.
//	@Tags			simulation
//	@Produce		application/json
//	@Router			/simulation/agents [get]
//	@Success		200	{object}	simulation.State
func (h *NavigationHandler) agents(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.State(r.Context()))
}

// StepRequest model info
//
//	@Description	jumlah tick yang dijalankan
type StepRequest struct {
	Ticks int `json:"ticks" validate:"gte=1,lte=10000"`
}

func (s *StepRequest) Bind(r *http.Request) error {
	if s.Ticks == 0 {
		s.Ticks = 1
	}
	return nil
}

// step
//
//	@Summary		jalankan simulasi beberapa tick. Obstacle bergerak dulu baru agent.
//	@Tags			simulation
//	@Param			body	body	StepRequest	true	"jumlah tick"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/simulation/step [post]
//	@Success		200	{object}	simulation.State
//	@Failure		409	{object}	ErrResponse
func (h *NavigationHandler) step(w http.ResponseWriter, r *http.Request) {
	data := &StepRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	st, err := h.svc.Step(r.Context(), data.Ticks)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, st)
}

// newRound
//
//	@Summary		mulai round baru: obstacle baru dan pasangan agent baru. Hasil round sebelumnya disimpan.
//	@Tags			simulation
//	@Produce		application/json
//	@Router			/simulation/round [post]
//	@Success		201	{object}	simulation.State
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) newRound(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.NewRound(r.Context())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, st)
}

// RoundsNearbyRequest query params rounds/nearby
type RoundsNearbyRequest struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lon    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gt=0,lte=50"`
}

// roundsNearby
//
//	@Summary		hasil round yang titik start-nya dekat lokasi.
//	@Tags			simulation
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"radius km, default 1"
//	@Produce		application/json
//	@Router			/rounds/nearby [get]
//	@Success		200	{array}		simulation.RoundResult
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) roundsNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := RoundsNearbyRequest{Radius: 1}
	var err error
	if req.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if req.Lon, err = strconv.ParseFloat(q.Get("lon"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if s := q.Get("radius"); s != "" {
		if req.Radius, err = strconv.ParseFloat(s, 64); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
	}
	if !h.validateStruct(w, r, req) {
		return
	}

	rounds, err := h.svc.RoundsNearby(r.Context(), req.Lat, req.Lon, req.Radius)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, rounds)
}
