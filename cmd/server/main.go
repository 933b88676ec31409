// Command server runs the authoritative arena-server world: it loads the
// JSON config (internal/config), builds the initial world.World (map
// blocks, nexuses, teams), starts the engine.Hub's tick loop in its own
// goroutine, and serves the websocket upgrade endpoint every client
// connects through. Ported from the teacher's server/main.go flag-driven
// bootstrap, trimmed of its metrics/cloud-reporting flags since this spec
// has no counterpart for them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/netutil"

	"github.com/brineforge/arena-server/internal/config"
	"github.com/brineforge/arena-server/internal/engine"
	"github.com/brineforge/arena-server/internal/session"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// maxConns bounds concurrent inbound connections so a flood of half-open
// sockets can't starve the listener before the websocket handshake even
// reaches the hub's register channel.
const maxConns = 4096

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.json", "path to the JSON config file")
	flag.Parse()

	file, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	w := world.NewWorld(file.WorldSize, rand.Int63())
	w.Mode.IOMode = file.IsIOMode()

	adminPassword := generateAdminPassword()
	w.AdminPassword = adminPassword
	fmt.Println("admin password:", adminPassword)

	if file.PromptPassword != nil && *file.PromptPassword {
		fmt.Print("enter password: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		file.Password = stringPtr(strings.TrimSpace(line))
	}
	w.Passwordless = file.Password == nil || *file.Password == ""
	if file.Password != nil {
		w.MainPassword = *file.Password
	}

	for _, t := range file.Teams {
		team := w.Teams.Create(t.Name, t.Password)
		team.Banner = w.Banners.Create(t.Name).ID
	}

	if file.Zones != nil {
		w.Entities.SetZoneGrid(*file.Zones)
	}

	placeBlocks(w, file.Blocks())
	placeNexuses(w, file.Nexuses())

	if file.StrategySecs != nil {
		world.StrategyDuration = world.SecondsToTicks(*file.StrategySecs)
	}
	if file.PlaySecs != nil {
		world.PlayDuration = world.SecondsToTicks(*file.PlaySecs)
	}
	if file.Autonomous != nil {
		w.AutonomousMin = int(file.Autonomous.MinPlayers)
		w.AutonomousMax = int(file.Autonomous.MaxPlayers)
		w.AutonomousTimeout = int(file.Autonomous.Timeout)
		w.Mode.WaitingCountdown = world.SecondsToTicks(float32(file.Autonomous.Timeout))
		w.Mode.Countdown = w.Mode.WaitingCountdown
	}

	hub := engine.NewHub(w)
	hub.PermitNPCs = file.PermitsNPCs()
	go hub.Run()

	if !file.IsHeadless() {
		go runConsole(hub)
	}

	http.HandleFunc("/ws", func(rw http.ResponseWriter, r *http.Request) {
		serveWebsocket(hub, rw, r)
	})

	addr := fmt.Sprintf(":%d", file.PortOrDefault())
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	ln = netutil.LimitListener(ln, maxConns)

	log.Println("listening on", addr)
	log.Fatal(http.Serve(ln, nil))
}

func serveWebsocket(hub *engine.Hub, rw http.ResponseWriter, r *http.Request) {
	conn, err := transport.Upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	var client *transport.SocketClient
	client = transport.NewSocketClient(conn, hub.Inbound(), func(c *transport.SocketClient) {
		hub.Unregister(c)
	})
	client.Data().Auth = session.AuthSpectator
	hub.Register(client)
	client.Run()
}

func placeBlocks(w *world.World, blocks []config.Block) {
	for _, b := range blocks {
		body := world.NewPhysicsBody(b.X, b.Y, b.W, b.H, b.Angle)
		body.Fixed = true
		body.Solid = true
		w.Entities.Insert(&world.Entity{
			Type:   world.TypeBlock,
			Banner: world.SystemBanner,
			Body:   body,
			Health: world.NewHealth(world.DataFor(world.TypeBlock).MaxHealth),
		})
	}
}

func placeNexuses(w *world.World, nexuses []config.NexusExt) {
	for _, n := range nexuses {
		data := world.DataFor(world.TypeNexus)
		body := world.NewPhysicsBody(n.X, n.Y, data.Width, data.Height, 0)
		body.Fixed = true
		w.Entities.Insert(&world.Entity{
			Type:         world.TypeNexus,
			Banner:       world.SystemBanner,
			Body:         body,
			Health:       world.NewHealth(data.MaxHealth),
			EffectRadius: n.EffectRadius,
		})
	}
}

// adminWordList backs the four-word admin password generated at startup
// (spec §6); a fixed ten-word list, same as the original's approach, just
// not reused from any natural-language wordlist package.
var adminWordList = []string{
	"harbor", "falcon", "ember", "granite", "willow",
	"comet", "marble", "thicket", "anchor", "quartz",
}

func generateAdminPassword() string {
	words := make([]string, 4)
	for i := range words {
		words[i] = adminWordList[rand.Intn(len(adminWordList))]
	}
	return strings.Join(words, " ")
}

func stringPtr(s string) *string { return &s }
