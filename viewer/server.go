// Copyright 2026 The sdtune Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Serves tuning reports over HTTP. Watches the reports directory so a
// dashboard can long-poll for fresh passes while a board is on the bench.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmclab/sdtune"
	"github.com/mmclab/sdtune/util"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/labstack/echo/v4"
)

var (
	portFlag = flag.Int("port", 8080, "Server HTTP port number")
	dirFlag  = flag.String("dir", "reports", "Input reports directory to display")
)

const reportExt = ".json.gz"

// A go-routine that waits for directory changes.
// Notifies changes by publishing a message via broker.
func watchDirectoryChanges(broker *util.Broker) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		glog.Errorf("NewWatcher failed: %v", err)
		return
	}
	defer watcher.Close()

	err = watcher.Add(*dirFlag)
	if err != nil {
		glog.Errorf("watcher.Add failed: %v", err)
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				glog.Warning("watcher.Events is not ok. Aborting")
				return
			}
			glog.V(1).Infof("Watcher event: %v", event)
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				if strings.HasSuffix(event.Name, reportExt) {
					broker.Publish(event)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				glog.Warning("watcher.Errors is not ok. Aborting")
				return
			}
			glog.Warning("Watcher error:", err)
		}
	}
}

func waitForReports(c echo.Context, watcher *util.Broker) error {
	var wg sync.WaitGroup
	timedOut := time.NewTimer(5 * time.Minute)

	wg.Add(1)
	go func() {
		defer wg.Done()
		dirChanged := watcher.Subscribe()
		defer watcher.Unsubscribe(dirChanged)

		for {
			select {
			case <-timedOut.C:
				glog.V(1).Infof("Timed out")
				return
			case <-c.Request().Context().Done():
				glog.V(1).Infof("Client disconnected")
				return
			case <-dirChanged:
				glog.V(1).Infof("Received dir notification from broker")
				return
			}
		}
	}()

	wg.Wait()
	return nil
}

func loadReport(name string) (sdtune.Report, error) {
	return sdtune.LoadReport(path.Join(*dirFlag, name+reportExt))
}

func main() {
	flag.Parse()
	defer glog.Flush()

	watchBroker := util.NewBroker()
	go watchBroker.Start()
	go watchDirectoryChanges(watchBroker)

	e := echo.New()

	// Returns list of report files in directory.
	e.GET("/reports", func(c echo.Context) error {
		if c.QueryParam("wait") != "false" {
			waitForReports(c, watchBroker)
		}
		files, err := filepath.Glob(path.Join(*dirFlag, "*"+reportExt))
		if err != nil {
			glog.Errorf("Glob failed: %v", err)
			return err
		}
		for i, f := range files {
			files[i] = strings.TrimSuffix(filepath.Base(f), reportExt)
		}
		return c.JSON(http.StatusOK, files)
	})

	// Returns every pass in a single report file.
	e.GET("/report/:name", func(c echo.Context) error {
		report, err := loadReport(c.Param("name"))
		if err != nil {
			glog.Errorf("Error loading report file: %v", err)
			return err
		}
		return c.JSON(http.StatusOK, report)
	})

	// Returns per-candidate pass rates across a report's passes.
	e.GET("/report/:name/rates", func(c echo.Context) error {
		report, err := loadReport(c.Param("name"))
		if err != nil {
			glog.Errorf("Error loading report file: %v", err)
			return err
		}
		if len(report) == 0 {
			return c.String(http.StatusInternalServerError, "Empty report")
		}
		return c.JSON(http.StatusOK, report.PassRates())
	})

	glog.Fatal(e.Start(fmt.Sprintf(":%d", *portFlag)))
}
