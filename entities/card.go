package entities

import (
	"slices"

	"go-tabletop/dto"
)

// Placement is the positional state shared by every table entity.
type Placement struct {
	X        float64
	Y        float64
	Rotation float64
}

func (p *Placement) MoveTo(x, y float64) {
	p.X = x
	p.Y = y
}

func (p *Placement) RotateTo(rotation float64) {
	p.Rotation = rotation
}

// Placeable is implemented by Card, CardStack and Counter.
type Placeable interface {
	MoveTo(x, y float64)
	RotateTo(rotation float64)
}

// Card is a single card on the table. Data is immutable after creation.
type Card struct {
	ID string
	Placement
	Data dto.CardData
}

func NewCard(args dto.CardInitArgs) *Card {
	return &Card{
		ID:        args.ID,
		Placement: Placement{X: args.X, Y: args.Y, Rotation: args.Rotation},
		Data:      args.Data,
	}
}

func (c *Card) Args() dto.CardInitArgs {
	return dto.CardInitArgs{ID: c.ID, X: c.X, Y: c.Y, Rotation: c.Rotation, Data: c.Data}
}

// CardStack holds an ordered pile of card payloads.
type CardStack struct {
	ID string
	Placement
	Cards []dto.CardData
}

func NewCardStack(args dto.CardStackInitArgs) *CardStack {
	return &CardStack{
		ID:        args.ID,
		Placement: Placement{X: args.X, Y: args.Y, Rotation: args.Rotation},
		Cards:     slices.Clone(args.Cards),
	}
}

// ReplaceCards overwrites the whole pile.
func (s *CardStack) ReplaceCards(cards []dto.CardData) {
	s.Cards = slices.Clone(cards)
}

func (s *CardStack) Args() dto.CardStackInitArgs {
	return dto.CardStackInitArgs{ID: s.ID, X: s.X, Y: s.Y, Rotation: s.Rotation, Cards: slices.Clone(s.Cards)}
}

// Counter holds an ordered list of numeric values.
type Counter struct {
	ID string
	Placement
	Vals []float64
}

func NewCounter(args dto.CounterInitArgs) *Counter {
	return &Counter{
		ID:        args.ID,
		Placement: Placement{X: args.X, Y: args.Y, Rotation: args.Rotation},
		Vals:      slices.Clone(args.Vals),
	}
}

// ReplaceVals overwrites all values.
func (c *Counter) ReplaceVals(vals []float64) {
	c.Vals = slices.Clone(vals)
}

func (c *Counter) Args() dto.CounterInitArgs {
	return dto.CounterInitArgs{ID: c.ID, X: c.X, Y: c.Y, Rotation: c.Rotation, Vals: slices.Clone(c.Vals)}
}
