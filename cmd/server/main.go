package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"hoax-detector/client/internal/config"
	"hoax-detector/client/internal/mockapi"
)

func main() {
	config.ApplyLogLevel(os.Getenv("LOG_LEVEL"))

	thresholds := mockapi.DefaultThresholds
	if v := strings.TrimSpace(os.Getenv("HOAX_THRESH_HIGH")); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			thresholds.High = val
		} else {
			logrus.Warnf("ignore HOAX_THRESH_HIGH=%q: %v", v, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("HOAX_THRESH_MED")); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			thresholds.Medium = val
		} else {
			logrus.Warnf("ignore HOAX_THRESH_MED=%q: %v", v, err)
		}
	}

	sampleRate := mockapi.DefaultSampleRate
	if v := strings.TrimSpace(os.Getenv("HOAX_LOG_SAMPLE_RATE")); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			sampleRate = val
		}
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := mockapi.Config{
		ModelID:        os.Getenv("MODEL_ID"),
		TermsPath:      os.Getenv("HOAX_TERMS_PATH"),
		Thresholds:     thresholds,
		AllowedOrigins: origins,
		EnableLogging:  strings.TrimSpace(os.Getenv("ENABLE_HOAX_LOGGING")) == "1",
		SampleRate:     sampleRate,
	}

	server, err := mockapi.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "7860"
	}

	logrus.Infof("starting hoax detector backend on :%s", port)
	if err := server.Router().Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
