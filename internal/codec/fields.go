package codec

// fieldWriter avanza la posición campo por campo; el primer error se queda
// pegado y los siguientes writes no hacen nada.
type fieldWriter struct {
	db  *DataBuf
	p   int
	err error
}

func (w *fieldWriter) str(s string) {
	if w.err == nil {
		w.p, w.err = w.db.PutString(w.p, s)
	}
}

func (w *fieldWriter) i16(v int16) {
	if w.err == nil {
		w.p, w.err = w.db.PutInt16(w.p, v)
	}
}

func (w *fieldWriter) i32(v int32) {
	if w.err == nil {
		w.p, w.err = w.db.PutInt32(w.p, v)
	}
}

func (w *fieldWriter) i64(v int64) {
	if w.err == nil {
		w.p, w.err = w.db.PutInt64(w.p, v)
	}
}

func (w *fieldWriter) f64(v float64) {
	if w.err == nil {
		w.p, w.err = w.db.PutFloat64(w.p, v)
	}
}

type fieldReader struct {
	db  *DataBuf
	p   int
	err error
}

func (r *fieldReader) str(maxLen int) (s string) {
	if r.err == nil {
		s, r.p, r.err = r.db.GetString(r.p, maxLen)
	}
	return s
}

func (r *fieldReader) i16() (v int16) {
	if r.err == nil {
		v, r.p, r.err = r.db.GetInt16(r.p)
	}
	return v
}

func (r *fieldReader) i32() (v int32) {
	if r.err == nil {
		v, r.p, r.err = r.db.GetInt32(r.p)
	}
	return v
}

func (r *fieldReader) i64() (v int64) {
	if r.err == nil {
		v, r.p, r.err = r.db.GetInt64(r.p)
	}
	return v
}

func (r *fieldReader) f64() (v float64) {
	if r.err == nil {
		v, r.p, r.err = r.db.GetFloat64(r.p)
	}
	return v
}
