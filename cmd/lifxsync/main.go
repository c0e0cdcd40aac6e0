package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/colorsync"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/config"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights/lifx"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/logging"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/screen"
)

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	settings, err := config.Load()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}

	logger.With(zap.Any("config", settings)).Info("Starting LIFX screen sync")
	logger.Info("Adjust LIFX_LABEL to pick a bulb by label. Empty means the first bulb discovered.")
	logger.Info("Adjust LIFX_PROTOCOL to pick the transport. Valid values are: [LAN, CLIENT]")
	logger.Info("Adjust COLOR_STRATEGY to change how the screen reduces to one color. Valid values are: [AVERAGE, DOMINANT]")
	logger.Info("Adjust DEFAULT_REGION to \"full\" or \"left,top,width,height\".")
	logger.Info("Adjust TRANSITION_DURATION and BRIGHTNESS_OFFSET live; the loop re-reads them every tick.")
	logger.Info("Set CONTINUOUS=false to push a single color and exit.")
	logger.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy, err := screen.StrategyByName(settings.ColorStrategy)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Invalid color strategy")
	}

	defaultRegion, err := screen.ParseRegion(settings.DefaultRegion)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Invalid default region")
	}

	device := connectDevice(ctx, settings)

	store := config.NewStore(settings)
	supervisor := colorsync.NewSupervisor(ctx, colorsync.Deps{
		Capturer: screen.DisplayCapturer{Display: settings.ScreenNumber},
		Resolver: screen.NewResolver(defaultRegion),
		Provider: store,
	})

	selector := screen.Selector{Name: "configured-default"}
	loop := supervisor.GetOrCreate(device.Label(), device, selector, strategy)

	go func() {
		for c := range loop.Updates() {
			logger.With(zap.Any("color", c)).Debug("Color changed")
		}
	}()

	loop.Start()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			logger.Info("Shutting down")
			supervisor.TeardownAll()
			return
		case <-ticker.C:
			if !settings.Continuous && loop.State() == colorsync.StateIdle {
				logger.Info("One-shot push complete")
				supervisor.TeardownAll()
				return
			}
		}
	}
}

func connectDevice(ctx context.Context, settings config.Settings) lights.Device {
	switch settings.Protocol {
	case "LAN":
		discoverCtx, cancel := context.WithTimeout(ctx, settings.DiscoveryTimeout)
		defer cancel()

		found, err := lights.DiscoverLifx(discoverCtx)
		if err != nil {
			logger.With(zap.Error(err)).Fatal("LIFX discovery failed")
		}

		var chosen *lights.LifxLight
		for _, d := range found {
			if chosen == nil && (settings.DeviceLabel == "" || d.Label() == settings.DeviceLabel) {
				chosen = d
				continue
			}
			d.Close()
		}
		if chosen == nil {
			logger.With(zap.String("label", settings.DeviceLabel)).Fatal("No discovered bulb matches LIFX_LABEL")
		}
		return chosen
	case "CLIENT":
		device, err := lifx.Connect(settings.DeviceLabel, settings.DiscoveryTimeout)
		if err != nil {
			logger.With(zap.Error(err)).Fatal("Failed to connect to LIFX light")
		}
		return device
	default:
		logger.Fatalf("unknown protocol: %v", settings.Protocol)
		return nil
	}
}
