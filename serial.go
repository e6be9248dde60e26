// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

import "code.hybscloud.com/atomix"

// Serial identifies one shared allocation. Owners that alias the same
// RwLock, whether Shared or RoLock, report equal serials; owners of
// different allocations never do. Serials grow with allocation order.
type Serial = uint32

// allocations numbers shared cells as they are created.
var allocations atomix.Uint32

// allocationSerial returns the serial for a newly created cell.
func allocationSerial() Serial {
	return allocations.Add(1)
}
