package valuehash

import "github.com/spikeekips/mitum-dao/util"

func (h L32) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *L32) UnmarshalText(b []byte) error {
	if len(b) < 1 {
		*h = L32{}

		return nil
	}

	i, err := NewL32FromString(string(b))
	if err != nil {
		return err
	}

	*h = i

	return nil
}

func (h L32) MarshalJSON() ([]byte, error) {
	return util.JSON.Marshal(h.String())
}

func (h *L32) UnmarshalJSON(b []byte) error {
	var s string
	if err := util.JSON.Unmarshal(b, &s); err != nil {
		return err
	}

	return h.UnmarshalText([]byte(s))
}
