package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dweymouth/vrmusicremote/backend"
	"github.com/dweymouth/vrmusicremote/backend/ipc"
	"github.com/dweymouth/vrmusicremote/res"
	"github.com/dweymouth/vrmusicremote/ui"
	"github.com/dweymouth/vrmusicremote/ui/console"

	"fyne.io/fyne/v2/app"
)

func main() {
	flag.Parse()
	if *backend.FlagVersion {
		fmt.Println(res.AppVersion)
		return
	}
	if *backend.FlagHelp {
		flag.Usage()
		return
	}

	if backend.HaveRemoteCommands() {
		os.Exit(runRemoteCommands())
	}

	myApp, err := backend.StartupApp(res.AppName, res.AppVersionTag)
	if errors.Is(err, backend.ErrAnotherInstance) {
		return
	} else if err != nil {
		log.Fatalf("fatal startup error: %v", err.Error())
	}

	if *backend.FlagConsole {
		ctx, stop := signal.NotifyContext(myApp.Context(), os.Interrupt)
		myApp.OnExit = stop
		cfg := myApp.Config()
		console.New(os.Stdout, ui.MarqueeConfig(cfg.Marquee)).Run(ctx, myApp.Mailbox, cfg.RenderInterval())
		stop()
	} else {
		fyneApp := app.NewWithID(res.AppID)
		panel := ui.NewPanel(fyneApp, res.DisplayName, myApp)
		panel.ShowAndRun()
	}

	log.Println("Running shutdown tasks...")
	myApp.Shutdown()
}

// runRemoteCommands forwards the command line to the running instance
// and returns the exit code.
func runRemoteCommands() int {
	cli, err := ipc.Connect()
	if err != nil {
		log.Printf("no running instance: %v", err)
		return 1
	}
	if err := backend.SendRemoteCommands(cli); err != nil {
		log.Printf("error sending command: %v", err)
		return 1
	}
	if *backend.FlagNowPlaying {
		np, err := cli.NowPlaying()
		if err != nil {
			log.Printf("error getting now playing: %v", err)
			return 1
		}
		fmt.Println(np.DisplayLine)
	}
	return 0
}
