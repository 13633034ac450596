// Package shape превращает описания фигур в наборы координат решётки.
//
// Каждая фигура описывается значением, реализующим Spec. Positions возвращает
// координаты для заданного режима оболочки, Sample раскладывает фигуру на
// проходы для политики заполнения (Solid, Outline, Hollow).
//
// Все сэмплеры пропускают точки через общий коллектор: координаты вне мира
// (bounds.Validate) отбрасываются, объёмные фигуры не повторяют координат,
// кривые (линия, спираль, Безье) не повторяют соседних координат.
// Неположительный радиус или высота дают пустой набор.
package shape
