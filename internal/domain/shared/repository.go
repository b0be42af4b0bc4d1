package shared

// ListOrder is the ordering every list query uses: insertion order, with the
// id as a tiebreak for rows created within the same clock tick.
const ListOrder = "created_at ASC, id ASC"
