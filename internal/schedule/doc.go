// Package schedule holds a weekly lineup and the commands that change it.
//
// A Schedule maps each of the seven days to a show. Days with nothing
// scheduled hold show.Empty, so Get never fails. The schedule itself
// exposes no public mutators: changes go through commands created by its
// factory methods and run by a history.Processor:
//
//	s := schedule.New()
//	p := history.NewProcessor()
//
//	p.Execute(s.NewAddCommand(show.Monday, movie))
//	p.Execute(s.NewRemoveCommand(show.Monday))
//	p.Execute(s.NewClearCommand())
//
//	p.Undo() // restores the week as it was before the clear
//
// Each command records what it needs to invert itself when it executes.
// AddCommand remembers the show it overwrote, RemoveCommand the show it
// removed, and ClearCommand a copy of the whole week.
//
// # Rendering
//
// String and WriteTo render one line per day in Monday-first order:
//
//	   Monday: Casablanca (102 min)
//	  Tuesday:
package schedule
