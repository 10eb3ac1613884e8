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

package sdtune

import (
	"github.com/golang/glog"
)

// BridgeProbe builds a Probe over the bridge's tuning exchange: the
// firmware requests the bus-defined tuning block at the current sample
// phase, checks it against the expected pattern and reports a status
// word with bit 0 set on a clean exchange. Transport trouble counts as
// a failed candidate, same as a garbled block.
func BridgeProbe(dev UsbDeviceInterface) Probe {
	return func() bool {
		var status uint32
		if err := dev.ControlIn(ReqTuneProbe, 0, &status); err != nil {
			glog.Warningf("[probe] tuning exchange failed: %v", err)
			return false
		}
		return status&1 == 1
	}
}
