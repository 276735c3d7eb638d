// Package monitoring turns a set of routing units into an HTTP server so that
// their tables and decisions can be inspected while a run is in progress.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/routeunit/directions"
	"github.com/sarchlab/routeunit/routing"
)

// Monitor serves the state of registered routing units over HTTP.
type Monitor struct {
	portNumber int
	routers    []*routing.Resolver
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRouter registers a routing unit to be monitored.
func (m *Monitor) RegisterRouter(r *routing.Resolver) {
	m.routers = append(m.routers, r)
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/routers", m.listRouters)
	r.HandleFunc("/api/router/{name}", m.routerDetails)
	r.HandleFunc("/api/route/{name}", m.resolveRoute)
	r.HandleFunc("/api/resource", m.listResources)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	fmt.Fprintf(
		os.Stderr,
		"Monitoring routers with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) listRouters(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, r := range m.routers {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", r.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) routerDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	router := m.findRouterOr404(w, name)
	if router == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(router)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type routeRsp struct {
	Link        int    `json:"link"`
	Direction   string `json:"direction"`
	ShortcutHub int    `json:"shortcut_hub,omitempty"`
	ViaShortcut bool   `json:"via_shortcut"`
	Error       string `json:"error,omitempty"`
}

// resolveRoute answers an ad-hoc routing query against one registered router.
// The destination endpoint doubles as the destination router, matching the
// one-endpoint-per-router convention of the mesh connector.
func (m *Monitor) resolveRoute(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	router := m.findRouterOr404(w, name)
	if router == nil {
		return
	}

	dest, err := strconv.Atoi(r.URL.Query().Get("dest"))
	if err != nil {
		w.WriteHeader(400)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	vnet, _ := strconv.Atoi(r.URL.Query().Get("vnet"))

	decision, err := router.Resolve(routing.Query{
		DestRouter: routing.RouterID(dest),
		VNet:       routing.VirtualNetID(vnet),
		Dest:       routing.NewDestinationSet(routing.EndpointID(dest)),
		InDir:      directions.Local,
	})

	rsp := routeRsp{}
	if err != nil {
		rsp.Error = err.Error()
	} else {
		dir, _ := router.DirectionOf(decision.Link)
		rsp.Link = int(decision.Link)
		rsp.Direction = string(dir)
		rsp.ShortcutHub = int(decision.ShortcutHub)
		rsp.ViaShortcut = decision.ViaShortcut
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) findRouterOr404(
	w http.ResponseWriter,
	name string,
) *routing.Resolver {
	for _, r := range m.routers {
		if r.Name() == name {
			return r
		}
	}

	w.WriteHeader(404)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
