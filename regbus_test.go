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

package sdtune_test

import (
	"bytes"
	"testing"

	"github.com/mmclab/sdtune"
	"github.com/mmclab/sdtune/mocks"

	"github.com/golang/mock/gomock"
)

func TestHiwordUpdate(t *testing.T) {
	tests := []struct {
		value, mask, shift uint32
		want               uint32
	}{
		{0x425, 0x7ff, 1, 0x0ffe084a},
		{0x0, 0x7ff, 1, 0x0ffe0000},
		{0x3, 0x3, 0, 0x00030003},
		{0x1, 0x1, 10, 0x04000400},
	}
	for _, tc := range tests {
		if got := sdtune.HiwordUpdate(tc.value, tc.mask, tc.shift); got != tc.want {
			t.Errorf("HiwordUpdate(%#x, %#x, %v) = %#x, want %#x",
				tc.value, tc.mask, tc.shift, got, tc.want)
		}
	}
}

func TestMemoryRead(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := []byte{0xaa, 0xbb, 0xcc}
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadCtrl, uint16(0), &sdtune.AddressBlock{uint32(len(data)), addr}).
			Return(nil),
		// Read data
		dev.EXPECT().ControlIn(
			sdtune.ReqMemReadCtrl, uint16(0), gomock.Any()).
			SetArg(2, data).
			Return(nil),
	)
	m := sdtune.NewMemory(dev)
	out := make([]byte, 3)
	err := m.Read(addr, out)
	if err != nil {
		t.Errorf("Memory Read failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("Unexpected data returned (%v)", out)
	}
}

func TestMemoryWrite(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := []byte{0xaa, 0xbb, 0xcc}
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block + data
		dev.EXPECT().ControlOut(
			sdtune.ReqMemWriteCtrl, uint16(0),
			[]byte{3, 0, 0, 0, // dlen
				0x44, 0x33, 0x22, 0x11, // addr
				0xaa, 0xbb, 0xcc, // data
			}).
			Return(nil),
	)
	m := sdtune.NewMemory(dev)
	err := m.Write(addr, data, false, nil)
	if err != nil {
		t.Errorf("Memory Write failed: %v", err)
	}
}

func TestMemoryReadBulk(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// 64 bytes crosses the control-transfer threshold and must ride the
	// bulk endpoint.
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadBulk, uint16(0), &sdtune.AddressBlock{uint32(len(data)), addr}).
			Return(nil),
		// Read data
		dev.EXPECT().Read(gomock.Any()).
			SetArg(0, data).
			Return(len(data), nil),
	)
	m := sdtune.NewMemory(dev)
	out := make([]byte, len(data))
	err := m.Read(addr, out)
	if err != nil {
		t.Errorf("Memory Read failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("Unexpected data returned (%v)", out)
	}
}

func TestMemoryReadBulkShortTransfer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := make([]byte, 64)
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadBulk, uint16(0), &sdtune.AddressBlock{uint32(len(data)), addr}).
			Return(nil),
		// Endpoint returns fewer bytes than requested.
		dev.EXPECT().Read(gomock.Any()).
			Return(10, nil),
	)
	m := sdtune.NewMemory(dev)
	out := make([]byte, len(data))
	if err := m.Read(addr, out); err == nil {
		t.Errorf("Memory Read expected to fail on a short bulk transfer")
	}
}

func TestMemoryWriteBulk(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block alone; the payload follows on the endpoint.
		dev.EXPECT().ControlOut(
			sdtune.ReqMemWriteBulk, uint16(0),
			[]byte{64, 0, 0, 0, // dlen
				0x44, 0x33, 0x22, 0x11, // addr
			}).
			Return(nil),
		// Write data
		dev.EXPECT().Write(data).
			Return(len(data), nil),
	)
	m := sdtune.NewMemory(dev)
	err := m.Write(addr, data, false, nil)
	if err != nil {
		t.Errorf("Memory Write failed: %v", err)
	}
}

func TestMemoryWriteDataVerificationFails(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := []byte{0xaa, 0xbb, 0xcc}
	dataRead := []byte{0xaa, 0xdd, 0xcc} // 2nd byte is different.
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block + data
		dev.EXPECT().ControlOut(
			sdtune.ReqMemWriteCtrl, uint16(0),
			[]byte{3, 0, 0, 0, // dlen
				0x44, 0x33, 0x22, 0x11, // addr
				0xaa, 0xbb, 0xcc, // data
			}).
			Return(nil),
		// Address block
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadCtrl, uint16(0), &sdtune.AddressBlock{uint32(len(dataRead)), addr}).
			Return(nil),
		// Read data
		dev.EXPECT().ControlIn(
			sdtune.ReqMemReadCtrl, uint16(0), gomock.Any()).
			SetArg(2, dataRead).
			Return(nil),
	)
	m := sdtune.NewMemory(dev)
	err := m.Write(addr, data, true, nil)
	if err == nil {
		t.Errorf("Memory Write expected to fail")
	}
}

func TestMemoryWriteReadMaskPasses(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	data := []byte{0xaa, 0xbb, 0xcc}
	dataRead := []byte{0xaa, 0xdd, 0xcc} // 2nd byte is different.
	mask := []byte{0xff, 0x00, 0xff}     // mask out 2nd byte.
	const addr = 0x11223344
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		// Address block + data
		dev.EXPECT().ControlOut(
			sdtune.ReqMemWriteCtrl, uint16(0),
			[]byte{3, 0, 0, 0, // dlen
				0x44, 0x33, 0x22, 0x11, // addr
				0xaa, 0xbb, 0xcc, // data
			}).
			Return(nil),
		// Address block
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadCtrl, uint16(0), &sdtune.AddressBlock{uint32(len(dataRead)), addr}).
			Return(nil),
		// Read data
		dev.EXPECT().ControlIn(
			sdtune.ReqMemReadCtrl, uint16(0), gomock.Any()).
			SetArg(2, dataRead).
			Return(nil),
	)
	m := sdtune.NewMemory(dev)
	err := m.Write(addr, data, true, mask)
	if err != nil {
		t.Errorf("Memory Write failed: %v", err)
	}
}

func TestMemoryReadReg(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	const addr = sdtune.Address(0xff960000)
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	gomock.InOrder(
		dev.EXPECT().ControlOut(
			sdtune.ReqMemReadCtrl, uint16(0), &sdtune.AddressBlock{4, uint32(addr)}).
			Return(nil),
		dev.EXPECT().ControlIn(
			sdtune.ReqMemReadCtrl, uint16(0), gomock.Any()).
			SetArg(2, []byte{0x4a, 0x08, 0x00, 0x00}).
			Return(nil),
	)
	m := sdtune.NewMemory(dev)
	value, err := m.ReadReg(addr)
	if err != nil {
		t.Fatalf("ReadReg failed: %v", err)
	}
	if value != 0x84a {
		t.Errorf("ReadReg = %#x, want 0x84a", value)
	}
}

func TestMemoryWriteRegSkipsVerification(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	const addr = sdtune.Address(0xff960000)
	word := sdtune.HiwordUpdate(0x425, 0x7ff, 1)
	dev := mocks.NewMockUsbDeviceInterface(mockCtrl)
	// A single control write and nothing else: hiword registers don't
	// read back what was written.
	dev.EXPECT().ControlOut(
		sdtune.ReqMemWriteCtrl, uint16(0),
		[]byte{4, 0, 0, 0, // dlen
			0x00, 0x00, 0x96, 0xff, // addr
			0x4a, 0x08, 0xfe, 0x0f, // value
		}).
		Return(nil)
	m := sdtune.NewMemory(dev)
	if err := m.WriteReg(addr, word); err != nil {
		t.Errorf("WriteReg failed: %v", err)
	}
}
