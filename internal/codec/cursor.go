package codec

// Cursor lleva la posición actual sobre un DataBuf para no tener que pasar
// offsets a mano entre llamadas. No es seguro para uso concurrente.
type Cursor struct {
	db  *DataBuf
	pos int
}

func NewCursor(db *DataBuf) *Cursor {
	return &Cursor{db: db}
}

func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.db.Capacity() {
		return ErrOutOfRange
	}
	c.pos = pos
	return nil
}

// Bytes devuelve lo escrito hasta la posición actual.
func (c *Cursor) Bytes() []byte {
	return c.db.Bytes()[:c.pos]
}

// Remaining es el espacio libre desde la posición actual.
func (c *Cursor) Remaining() int {
	return c.db.Capacity() - c.pos
}

func (c *Cursor) WriteTrack(t Track) error {
	p, err := EncodeTrack(c.db, c.pos, t)
	if err != nil {
		return err
	}
	c.pos = p
	return nil
}

func (c *Cursor) WriteProximity(p ProximityChange) error {
	end, err := EncodeProximity(c.db, c.pos, p)
	if err != nil {
		return err
	}
	c.pos = end
	return nil
}

func (c *Cursor) ReadTrack(maxIDLen int) (Track, error) {
	t, p, err := DecodeTrack(c.db, c.pos, maxIDLen)
	if err != nil {
		return Track{}, err
	}
	c.pos = p
	return t, nil
}

func (c *Cursor) ReadProximity(maxRefLen, maxProxLen int) (ProximityChange, error) {
	pc, p, err := DecodeProximity(c.db, c.pos, maxRefLen, maxProxLen)
	if err != nil {
		return ProximityChange{}, err
	}
	c.pos = p
	return pc, nil
}
