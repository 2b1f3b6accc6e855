// Command autokuma runs the reconciliation daemon: it connects to an
// Uptime Kuma instance over Socket.IO and continuously syncs its
// monitors, notifications and docker hosts to the desired state
// assembled from container labels, static files and cluster CRDs.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/autokuma-go/autokuma/internal/config"
	"github.com/autokuma-go/autokuma/internal/kuma"
	"github.com/autokuma-go/autokuma/internal/logging"
	"github.com/autokuma-go/autokuma/internal/migrate"
	"github.com/autokuma-go/autokuma/internal/reconcile"
	"github.com/autokuma-go/autokuma/internal/source/cluster"
	"github.com/autokuma-go/autokuma/internal/source/docker"
	"github.com/autokuma-go/autokuma/internal/store"
	akv1alpha1 "github.com/autokuma-go/autokuma/internal/apis/autokuma/v1alpha1"
	"github.com/autokuma-go/autokuma/internal/compile"
	"github.com/go-kit/log/level"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/clientcmd"
	ctrlclient "sigs.k8s.io/controller-runtime/pkg/client"
)

func main() {
	if err := mainErr(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mainErr() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to an AutoKuma config file (optional; env vars and defaults still apply)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	level.Info(logger).Log("msg", "starting autokuma", "kuma_url", cfg.Kuma.URL)

	kumaClient := kuma.New(logger, kuma.Options{
		URL:                cfg.Kuma.URL,
		Username:           cfg.Kuma.Username,
		Password:           cfg.Kuma.Password,
		InsecureSkipVerify: !cfg.Kuma.TLS.Verify,
		CallTimeout:        cfg.Kuma.CallTimeout,
	})

	idStore, err := store.Open(cfg.StorePath)
	if err != nil {
		return errors.Wrap(err, "opening identifier store")
	}
	defer idStore.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := kumaClient.Connect(ctx); err != nil {
		return errors.Wrap(err, "connecting to kuma")
	}
	defer kumaClient.Disconnect()

	if err := migrate.Run(ctx, logger, idStore, kumaClient, cfg.TagName); err != nil {
		return errors.Wrap(err, "running identifier store migrations")
	}

	var dockerSrc *docker.Source
	if cfg.Docker.Enabled {
		dockerSrc, err = docker.New(cfg.Docker.Host, cfg.Docker.Prefix)
		if err != nil {
			return errors.Wrap(err, "initializing docker source")
		}
		defer dockerSrc.Close()
	}

	var clusterSrc *cluster.Source
	if cfg.Cluster.Enabled {
		clusterSrc, err = newClusterSource(cfg.Cluster.Kubeconfig)
		if err != nil {
			return errors.Wrap(err, "initializing cluster source")
		}
	}

	sources := newSourceSet(cfg, dockerSrc, clusterSrc, logger)

	reconciler := reconcile.New(logger, kumaClient, idStore, sources.collect, reconcile.Config{
		TagName:      cfg.TagName,
		TagColor:     cfg.TagColor,
		OnDelete:     reconcile.OnDelete(cfg.OnDelete),
		SyncInterval: cfg.SyncInterval,
	})

	var g run.Group

	g.Add(func() error {
		return reconciler.Run(ctx)
	}, func(error) {
		cancel()
	})

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	g.Add(func() error {
		level.Info(logger).Log("msg", "serving metrics", "addr", cfg.MetricsAddr)
		return metricsServer.ListenAndServe()
	}, func(error) {
		_ = metricsServer.Close()
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	g.Add(func() error {
		<-sigCh
		return nil
	}, func(error) {
		close(sigCh)
	})

	return g.Run()
}

func newClusterSource(kubeconfigPath string) (*cluster.Source, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})

	restConfig, err := loader.ClientConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading kubeconfig")
	}

	scheme := runtime.NewScheme()
	if err := akv1alpha1.AddToScheme(scheme); err != nil {
		return nil, errors.Wrap(err, "registering autokuma CRD types")
	}

	c, err := ctrlclient.New(restConfig, ctrlclient.Options{Scheme: scheme})
	if err != nil {
		return nil, errors.Wrap(err, "building cluster client")
	}

	return cluster.New(c, compile.NewRenderer()), nil
}
