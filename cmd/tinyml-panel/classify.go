package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/tinyml-panel/internal/actuator"
	"github.com/sweeney/tinyml-panel/internal/inference"
	"github.com/sweeney/tinyml-panel/internal/led"
	"github.com/sweeney/tinyml-panel/internal/logic"
	"github.com/sweeney/tinyml-panel/internal/model"
	"github.com/sweeney/tinyml-panel/internal/sensor"
	"github.com/sweeney/tinyml-panel/internal/ui"
)

func newClassifyCmd() *cobra.Command {
	var temp, humi float64
	var arena int

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run one inference cycle on a given reading",
		Long: `classify runs the embedded model once on the given temperature and
humidity and prints the score and indicator band. No hardware is used.`,
		Example: `  tinyml-panel classify --temp 25 --humi 50
  tinyml-panel classify --temp 38 --humi 55 --no-color`,
		RunE: func(cmd *cobra.Command, args []string) error {
			interp, _ := model.Setup(model.Embedded, arena)

			task := &inference.Task{
				Sensor:    sensor.NewFakeSource(logic.Reading{Temperature: temp, Humidity: humi}),
				Model:     interp,
				Indicator: actuator.NewIndicator(led.NewLogStrip("indicator")),
			}
			c, err := task.Step(context.Background(), time.Now())
			if err != nil {
				ui.PrintError(cmd.ErrOrStderr(), err)
				return err
			}
			ui.PrintClassification(cmd.OutOrStdout(), c)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&temp, "temp", 0, "temperature in °C")
	f.Float64Var(&humi, "humi", 0, "relative humidity in %")
	f.IntVar(&arena, "arena", model.DefaultArenaSize, "tensor arena size in bytes")
	cmd.MarkFlagRequired("temp")
	cmd.MarkFlagRequired("humi")
	return cmd
}
