package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/brineforge/arena-server/internal/engine"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// runConsole reads admin verbs from stdin line by line (spec §6's CLI
// surface), mutating the hub's world the same way a God-authorized client
// command would. It is optional: main only starts it when the config isn't
// headless, same shape as the password prompt it already reads stdin for.
func runConsole(hub *engine.Hub) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("console ready (start, flip, team new <name> [password], toggle iomode, toggle passwordless, broadcast <msg>, autonomous <min> <max> <timeout>, getbanners, nuke <banner>, reset, selftest, santa)")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		hub.RunOnHub(func(hub *engine.Hub) {
			runConsoleCommand(hub, fields)
		})
	}
}

func runConsoleCommand(hub *engine.Hub, fields []string) {
	w := hub.World
	switch fields[0] {
	case "start":
		w.Mode.ForceStart()
	case "flip":
		w.Mode.Flip()
	case "team":
		if len(fields) >= 3 && fields[1] == "new" {
			password := ""
			if len(fields) >= 4 {
				password = fields[3]
			}
			team := w.Teams.Create(fields[2], password)
			team.Banner = w.Banners.Create(fields[2]).ID
			fmt.Println("created team", team.ID, team.Name)
		} else {
			fmt.Println("usage: team new <name> [password]")
		}
	case "toggle":
		if len(fields) < 2 {
			fmt.Println("usage: toggle iomode|passwordless")
			return
		}
		switch fields[1] {
		case "iomode":
			w.Mode.IOMode = !w.Mode.IOMode
			fmt.Println("iomode:", w.Mode.IOMode)
		case "passwordless":
			w.Passwordless = !w.Passwordless
			fmt.Println("passwordless:", w.Passwordless)
		default:
			fmt.Println("usage: toggle iomode|passwordless")
		}
	case "broadcast":
		if len(fields) < 2 {
			fmt.Println("usage: broadcast <message>")
			return
		}
		message := strings.Join(fields[1:], " ")
		hub.Clients.Broadcast(transport.ChatRelay{Text: message, Sender: "admin", Banner: world.SystemBanner, Priority: 1})
	case "autonomous":
		if len(fields) != 4 {
			fmt.Println("usage: autonomous <min> <max> <timeout>")
			return
		}
		min, errMin := strconv.Atoi(fields[1])
		max, errMax := strconv.Atoi(fields[2])
		timeout, errTimeout := strconv.Atoi(fields[3])
		if errMin != nil || errMax != nil || errTimeout != nil {
			fmt.Println("autonomous: arguments must be integers")
			return
		}
		w.AutonomousMin, w.AutonomousMax, w.AutonomousTimeout = min, max, timeout
		w.Mode.WaitingCountdown = world.SecondsToTicks(float32(timeout))
	case "getbanners":
		for _, b := range w.Banners.All() {
			fmt.Printf("%d\t%s\tscore=%d\talive=%v\tteam=%d\n", b.ID, b.Name, b.Score, b.Alive, b.Team)
		}
	case "nuke":
		if len(fields) != 2 {
			fmt.Println("usage: nuke <banner id>")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("nuke: banner id must be an integer")
			return
		}
		hub.NukeBanner(world.BannerID(id))
	case "reset":
		hub.ResetMatch()
	case "selftest":
		runSelfTest(w)
	case "santa":
		for _, b := range w.Banners.All() {
			if b.ID == world.SystemBanner {
				continue
			}
			b.Score += 10000
			hub.DirtyScore(b.ID)
		}
		hub.Clients.Broadcast(transport.ChatRelay{Text: "ho ho ho", Sender: "admin", Banner: world.SystemBanner, Priority: 1})
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

// runSelfTest runs a handful of cheap internal consistency checks and
// prints the results, rather than exercising the full (non-runnable here)
// go test suite from a live process.
func runSelfTest(w *world.World) {
	ok := true
	for _, e := range w.Entities.All() {
		if e.Dead() {
			fmt.Println("selftest: FAIL dead entity still in store:", e.ID)
			ok = false
		}
		if e.Health.Current > e.Health.Max {
			fmt.Println("selftest: FAIL health over max:", e.ID)
			ok = false
		}
	}
	if _, exists := w.Banners.Get(world.SystemBanner); !exists {
		fmt.Println("selftest: FAIL system banner missing")
		ok = false
	}
	if ok {
		fmt.Println("selftest: PASS")
	}
}
