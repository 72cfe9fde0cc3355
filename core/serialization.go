// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types. Timestamps are stored as Unix
// microseconds in UTC.
var (
	IDMUS   = idSer{}
	NoteMUS = noteSer{}

	vectorMUS = ord.NewSliceSer[float32](varint.Float32)
	tagsMUS   = ord.NewSliceSer[string](ord.String)
)

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type noteSer struct{}

func (noteSer) Marshal(note Note, bs []byte) (n int) {
	n = IDMUS.Marshal(note.Id, bs)
	n += ord.String.Marshal(note.Text, bs[n:])
	n += vectorMUS.Marshal(note.Vector, bs[n:])
	n += varint.Int.Marshal(int(note.Embedding), bs[n:])
	n += tagsMUS.Marshal(note.Tags, bs[n:])
	n += ord.String.Marshal(note.Image, bs[n:])
	n += varint.Int64.Marshal(note.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (noteSer) Unmarshal(bs []byte) (note Note, n int, err error) {
	var n1 int
	note.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	note.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	note.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var state int
	state, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	note.Embedding = EmbeddingState(state)
	note.Tags, n1, err = tagsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	note.Image, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	note.CreatedAt = time.UnixMicro(micros).UTC()
	return
}

func (noteSer) Size(note Note) (size int) {
	size = IDMUS.Size(note.Id)
	size += ord.String.Size(note.Text)
	size += vectorMUS.Size(note.Vector)
	size += varint.Int.Size(int(note.Embedding))
	size += tagsMUS.Size(note.Tags)
	size += ord.String.Size(note.Image)
	size += varint.Int64.Size(note.CreatedAt.UnixMicro())
	return size
}

func (noteSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = tagsMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}
