package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/gorilla/mux"

	"github.com/sarchlab/routeunit/mesh"
	"github.com/sarchlab/routeunit/routing"
)

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		routers []*routing.Resolver
	)

	BeforeEach(func() {
		m = NewMonitor()

		routers = mesh.NewConnector().
			WithSize(4, 4).
			CreateNetwork("Network")
		for _, r := range routers {
			m.RegisterRouter(r)
		}
	})

	It("should list registered routers", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/routers", nil)

		m.listRouters(w, r)

		var names []string
		Expect(json.Unmarshal(w.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(HaveLen(16))
		Expect(names[5]).To(Equal("Network.Router5.RoutingUnit"))
	})

	It("should resolve an ad-hoc query", func() {
		router := mux.NewRouter()
		router.HandleFunc("/api/route/{name}", m.resolveRoute)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET",
			"/api/route/Network.Router5.RoutingUnit?dest=10&vnet=0", nil)

		router.ServeHTTP(w, r)

		var rsp routeRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Error).To(BeEmpty())
		Expect(rsp.Direction).To(Equal("East"))
	})

	It("should 404 on an unknown router", func() {
		router := mux.NewRouter()
		router.HandleFunc("/api/route/{name}", m.resolveRoute)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/route/NoSuchRouter?dest=1", nil)

		router.ServeHTTP(w, r)

		Expect(w.Code).To(Equal(404))
	})
})
