// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

// Pentagon returns a fixed, slightly rotated textured pentagon
// of radius 0.5, fanned around its last vertex.
func Pentagon() *Mesh[TexturedVertex] {
	return &Mesh[TexturedVertex]{
		Vertices: []TexturedVertex{
			{Position: [3]float32{-0.0868241, 0.49240386, 0}, TexCoord: [2]float32{0.4131759, 0.00759614}},
			{Position: [3]float32{-0.49513406, 0.06958647, 0}, TexCoord: [2]float32{0.0048659444, 0.43041354}},
			{Position: [3]float32{-0.21918549, -0.44939706, 0}, TexCoord: [2]float32{0.28081453, 0.949397}},
			{Position: [3]float32{0.35966998, -0.3473291, 0}, TexCoord: [2]float32{0.85967, 0.84732914}},
			{Position: [3]float32{0.44147372, 0.2347359, 0}, TexCoord: [2]float32{0.9414737, 0.2652641}},
		},
		Indices: []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4},
	}
}
