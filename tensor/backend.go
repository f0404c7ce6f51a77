// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Backend is the interface every compute implementation satisfies. It
// covers the closed operation set of the library: element-wise
// arithmetic, matrix multiplication, shape manipulation, ReLU, and the
// fused softmax cross-entropy loss.
type Backend = tensor.Backend
